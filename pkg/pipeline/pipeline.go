// Package pipeline drives a frame: it owns the mesh, camera, rasterizer and
// shading mode, and hands finished frames to an encoder or the terminal.
package pipeline

import (
	"fmt"
	"image/color"

	"github.com/taigrr/blinn/pkg/config"
	"github.com/taigrr/blinn/pkg/models"
	"github.com/taigrr/blinn/pkg/render"
	"github.com/taigrr/blinn/pkg/shading"
)

// Options selects what to draw and how. Width and Height override the scene
// when positive. A zero Scene means config.Default().
type Options struct {
	Width  int
	Height int
	Mode   shading.Mode

	ModelPath     string
	TexturePath   string // Color texture for ModeTexture
	HeightMapPath string // Height map for the remaining modes

	// CheckerFallback binds a procedural checker texture in texture mode when
	// neither TexturePath nor the mesh provides one.
	CheckerFallback bool

	Scene config.Scene
}

var (
	checkerLight = color.RGBA{200, 200, 200, 255}
	checkerDark  = color.RGBA{100, 100, 100, 255}
)

// Driver renders frames of a single mesh.
type Driver struct {
	scene  config.Scene
	mode   shading.Mode
	mesh   *models.Mesh
	tris   []render.Triangle
	camera *render.Camera

	shader  shading.FragmentShader
	texture *render.Texture

	fb     *render.Framebuffer
	raster *render.Rasterizer
}

// New loads the mesh and textures and builds the fragment stage.
func New(opts Options) (*Driver, error) {
	scene := opts.Scene
	if scene.Camera == (config.Camera{}) {
		scene = config.Default()
	}
	scene.Resolve(config.Overrides{Width: opts.Width, Height: opts.Height})
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	shader, err := shading.New(opts.Mode, scene.ShadingConfig())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	mesh, err := models.Load(opts.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load model: %w", err)
	}

	d := &Driver{
		scene:  scene,
		mode:   opts.Mode,
		mesh:   mesh,
		tris:   mesh.Triangles(),
		camera: render.NewCamera(),
		shader: shader,
	}
	if d.texture, err = pickTexture(opts, mesh); err != nil {
		return nil, err
	}

	d.Resize(scene.Width, scene.Height)
	return d, nil
}

func pickTexture(opts Options, mesh *models.Mesh) (*render.Texture, error) {
	if opts.Mode.UsesColorTexture() {
		if opts.TexturePath != "" {
			tex, err := render.LoadTexture(opts.TexturePath)
			if err != nil {
				return nil, fmt.Errorf("pipeline: %w", err)
			}
			return tex, nil
		}
		if img := mesh.BaseMap(); img != nil {
			return render.TextureFromImage(img), nil
		}
		if opts.CheckerFallback {
			return render.NewCheckerTexture(64, 64, 8, checkerLight, checkerDark), nil
		}
		return nil, nil
	}

	if opts.HeightMapPath == "" {
		return nil, nil
	}
	tex, err := render.LoadTexture(opts.HeightMapPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: height map: %w", err)
	}
	return tex, nil
}

// Resize replaces the framebuffer. Non-positive sizes are ignored.
func (d *Driver) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.scene.Width, d.scene.Height = width, height
	d.camera.Params = d.scene.CameraParams()

	d.fb = render.NewFramebuffer(width, height)
	d.raster = render.NewRasterizer(d.fb)
	d.raster.SetVertexShader(shading.PassThrough)
	d.raster.SetFragmentShader(d.shader)
	d.raster.SetTexture(d.texture)
}

// Render draws one frame with the model rotated angle degrees about Y.
// Transforms are rebuilt from scratch every call.
func (d *Driver) Render(angle float64) *render.Framebuffer {
	d.camera.SetAngle(angle)
	d.camera.Apply(d.raster)
	d.raster.Clear(d.scene.BackgroundColor())
	d.raster.Draw(d.tris)
	return d.fb
}

// Mode returns the active shading mode.
func (d *Driver) Mode() shading.Mode { return d.mode }

// Mesh returns the loaded mesh.
func (d *Driver) Mesh() *models.Mesh { return d.mesh }

// Scene returns the resolved scene.
func (d *Driver) Scene() config.Scene { return d.scene }

// Stats returns the culling counters of the last frame.
func (d *Driver) Stats() render.CullingStats { return d.raster.CullingStats }

// Textured reports whether a texture is bound.
func (d *Driver) Textured() bool { return d.texture != nil }
