// blinn - Blinn-Phong software rasterizer
// Renders a mesh once to an image file, or spins it in the terminal.
//
// Usage:
//
//	blinn [options] [output] [shader]
//
// With an output file the frame is written and the program exits. Without
// one the model is shown in the terminal:
//
//	A/D, Left/Right - Rotate the model
//	R               - Reset rotation
//	?               - Toggle HUD overlay
//	Esc, Ctrl+C     - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/blinn/pkg/config"
	"github.com/taigrr/blinn/pkg/math3d"
	"github.com/taigrr/blinn/pkg/pipeline"
	"github.com/taigrr/blinn/pkg/shading"
)

var (
	modelPath   = flag.String("model", "models/spot/spot_triangulated_good.obj", "Path to mesh (OBJ/GLB)")
	texturePath = flag.String("texture", "", "Path to color texture for the texture shader")
	heightPath  = flag.String("heightmap", "", "Path to height map for the bump and displacement shaders")
	scenePath   = flag.String("scene", "", "Path to YAML scene file")
	shaderName  = flag.String("shader", "phong", "Fragment shader ("+strings.Join(modeNames(), ", ")+")")
	width       = flag.Int("width", 0, "Output width (default from scene, 700)")
	height      = flag.Int("height", 0, "Output height (default from scene, 700)")
	angle       = flag.Float64("angle", 140, "Model rotation about Y, degrees (overrides scene)")
	targetFPS   = flag.Int("fps", 60, "Target FPS for the terminal viewer")
	checker     = flag.Bool("checker", false, "Use a checker texture when none is available")
	bgColor     = flag.String("bg", "", "Background color (R,G,B), default from scene")
)

func modeNames() []string {
	var names []string
	for _, m := range shading.Modes() {
		names = append(names, m.String())
	}
	return names
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blinn - Blinn-Phong software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blinn [options] [output.png|.bmp|.webp] [shader]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls (no output file):\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset rotation\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(output, shader string) error {
	if shader == "" {
		shader = *shaderName
	}
	mode, err := shading.ParseMode(shader)
	if err != nil {
		return err
	}

	scene := config.Default()
	if *scenePath != "" {
		if scene, err = config.Load(*scenePath); err != nil {
			return err
		}
	}
	over := config.Overrides{Width: *width, Height: *height}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "angle" {
			over.Angle = angle
		}
	})
	scene.Resolve(over)
	if *bgColor != "" {
		bg, err := parseColor(*bgColor)
		if err != nil {
			return err
		}
		scene.Background = config.Vec{bg.X, bg.Y, bg.Z}
	}

	opts := pipeline.Options{
		Mode:            mode,
		ModelPath:       *modelPath,
		TexturePath:     *texturePath,
		HeightMapPath:   *heightPath,
		CheckerFallback: *checker,
		Scene:           scene,
	}

	fmt.Printf("Rasterizing using the %s shader\n", mode)
	if output != "" {
		return renderFile(opts, output)
	}
	return view(opts)
}

func renderFile(opts pipeline.Options, output string) error {
	d, err := pipeline.New(opts)
	if err != nil {
		return err
	}
	fb := d.Render(opts.Scene.Camera.Angle)
	if err := pipeline.Save(fb, output); err != nil {
		return err
	}

	stats := d.Stats()
	fmt.Printf("Wrote %s (%dx%d, %d fragments, %d triangles dropped)\n",
		output, fb.Width, fb.Height, stats.FragmentsShaded, stats.TrianglesDropped)
	return nil
}

// RotationAxis tracks the model angle and its velocity, which a harmonica
// spring eases back to zero.
type RotationAxis struct {
	Position  float64 // Degrees
	Velocity  float64 // Degrees per frame
	velSpring harmonica.Spring
	velAccel  float64
}

// NewRotationAxis creates a critically damped axis starting at start degrees.
func NewRotationAxis(fps int, start float64) RotationAxis {
	return RotationAxis{
		Position:  start,
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances one frame.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// HUD shows the shader, frame rate and triangle count over the image.
type HUD struct {
	filename  string
	mode      shading.Mode
	polyCount int
	visible   bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// UpdateFPS counts one frame.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render writes the overlay with raw ANSI sequences after the frame.
func (h *HUD) Render(width, height int, angle float64) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !h.visible {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	polyCol := max(width-12, 1)
	fmt.Printf("%s%s%s%s %d polys %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.polyCount, reset)

	fmt.Printf("%s%s%s %s shader  %.0f° %s", moveTo(height, 1), bgBlack, fgWhite, h.mode, angle, reset)
}

func view(opts pipeline.Options) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Two framebuffer rows per terminal cell.
	opts.Width, opts.Height = cols, rows*2
	d, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hud := &HUD{
		filename:  filepath.Base(opts.ModelPath),
		mode:      d.Mode(),
		polyCount: d.Mesh().TriangleCount(),
		fpsTime:   time.Now(),
	}
	start := opts.Scene.Camera.Angle
	rotation := NewRotationAxis(*targetFPS, start)
	const impulse = 2.0 // degrees per frame per key press

	ticker := time.NewTicker(time.Second / time.Duration(max(*targetFPS, 1)))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				d.Resize(cols, rows*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					return nil
				case ev.MatchString("a", "left"):
					rotation.Velocity -= impulse
				case ev.MatchString("d", "right"):
					rotation.Velocity += impulse
				case ev.MatchString("r"):
					rotation = NewRotationAxis(*targetFPS, start)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.visible = !hud.visible
				}
			}

		case <-ticker.C:
			rotation.Update()
			fb := d.Render(rotation.Position)
			fb.Draw(term, term.Bounds())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			hud.UpdateFPS()
			hud.Render(cols, rows, normalizeAngle(rotation.Position))
		}
	}
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// parseColor reads an "R,G,B" triple.
func parseColor(s string) (math3d.Vec3, error) {
	var r, g, b float64
	if _, err := fmt.Sscanf(s, "%g,%g,%g", &r, &g, &b); err != nil {
		return math3d.Vec3{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return math3d.V3(r, g, b), nil
}
