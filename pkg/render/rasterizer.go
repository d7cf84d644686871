package render

import (
	"math"

	"github.com/taigrr/blinn/pkg/math3d"
	"github.com/taigrr/blinn/pkg/shading"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // Model-space position
	Normal   math3d.Vec3 // Model-space normal
	UV       math3d.Vec2 // Texture coordinates
	Color    math3d.Vec3 // Base color, unit range
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// CullingStats tracks frustum culling and coverage for the last Draw call.
type CullingStats struct {
	MeshesTested       int // Meshes tested for culling
	MeshesCulled       int // Meshes culled (not rendered)
	MeshesDrawn        int // Meshes that passed culling
	TrianglesDropped   int // Triangles behind the eye or with zero area
	FragmentsShaded    int // Fragments that passed the depth test
	FragmentsDiscarded int // Fragments outside the depth range or occluded
}

// Rasterizer scan-converts triangles into a Framebuffer, running the vertex
// and fragment stages and a depth test. Backface culling is disabled.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)

	model      math3d.Mat4
	view       math3d.Mat4
	projection math3d.Mat4

	vertexShader   shading.VertexShader
	fragmentShader shading.FragmentShader
	texture        shading.Sampler

	CullingStats CullingStats
}

// NewRasterizer creates a rasterizer drawing into fb with identity
// transforms, the pass-through vertex stage and the normal fragment stage.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		fb:             fb,
		model:          math3d.Identity(),
		view:           math3d.Identity(),
		projection:     math3d.Identity(),
		vertexShader:   shading.PassThrough,
		fragmentShader: shading.NormalShader{},
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// FrameBuffer returns the color target.
func (r *Rasterizer) FrameBuffer() *Framebuffer {
	return r.fb
}

func (r *Rasterizer) SetModel(m math3d.Mat4)      { r.model = m }
func (r *Rasterizer) SetView(m math3d.Mat4)       { r.view = m }
func (r *Rasterizer) SetProjection(m math3d.Mat4) { r.projection = m }

// SetVertexShader installs the vertex stage. nil restores PassThrough.
func (r *Rasterizer) SetVertexShader(vs shading.VertexShader) {
	if vs == nil {
		vs = shading.PassThrough
	}
	r.vertexShader = vs
}

// SetFragmentShader installs the fragment stage.
func (r *Rasterizer) SetFragmentShader(fs shading.FragmentShader) {
	r.fragmentShader = fs
}

// SetTexture binds the sampler handed to every fragment. A nil *Texture
// unbinds.
func (r *Rasterizer) SetTexture(s shading.Sampler) {
	if t, ok := s.(*Texture); ok && t == nil {
		s = nil
	}
	r.texture = s
}

// Clear fills the color buffer with bg and resets the depth buffer.
func (r *Rasterizer) Clear(bg math3d.Vec3) {
	if r.fb != nil {
		r.fb.Clear(bg)
	}
	r.ClearDepth()
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// Frustum returns the world-space view frustum for the current view and
// projection.
func (r *Rasterizer) Frustum() Frustum {
	// Visible points have negative clip w; negating the matrix flips w
	// positive without moving the planes.
	return NewFrustumFromMatrix(r.projection.Mul(r.view).Negate())
}

// IsVisible tests if a model-space AABB is visible after the model transform.
func (r *Rasterizer) IsVisible(localBounds AABB) bool {
	return r.Frustum().IntersectAABB(localBounds.Transform(r.model))
}

// Draw culls the triangle set against the view frustum as a whole, then
// rasterizes each triangle.
func (r *Rasterizer) Draw(tris []Triangle) {
	r.CullingStats = CullingStats{}
	if len(tris) == 0 || r.fb == nil || r.fragmentShader == nil {
		return
	}

	r.CullingStats.MeshesTested++
	if !r.IsVisible(TrianglesBounds(tris)) {
		r.CullingStats.MeshesCulled++
		return
	}
	r.CullingStats.MeshesDrawn++

	mv := r.view.Mul(r.model)
	mvp := r.projection.Mul(mv)
	normalMat := mv.Inverse().Transpose()
	for i := range tris {
		r.drawTriangle(&tris[i], mv, mvp, normalMat)
	}
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y    float64     // Screen coordinates, Y down
	Z       float64     // Depth, -1 at near and +1 at far
	W       float64     // Clip w (view-space z, negative when visible)
	ViewPos math3d.Vec3 // View-space position
	Normal  math3d.Vec3 // View-space normal
	Color   math3d.Vec3
	UV      math3d.Vec2
}

func (r *Rasterizer) project(v Vertex, mv, mvp, normalMat math3d.Mat4) (screenVertex, bool) {
	pos := r.vertexShader(shading.VertexPayload{Position: v.Position})
	sv := screenVertex{
		ViewPos: mv.MulVec3(pos),
		Normal:  normalMat.MulVec3Dir(v.Normal),
		Color:   v.Color,
		UV:      v.UV,
	}
	if sv.ViewPos.Z >= 0 {
		return sv, false
	}

	clip := mvp.MulVec4(math3d.V4FromV3(pos, 1))
	ndc := clip.PerspectiveDivide()
	sv.W = clip.W

	// The projection mirrors X and Y; the viewport undoes it.
	sv.X = (1 - ndc.X) * 0.5 * float64(r.Width())
	sv.Y = (1 + ndc.Y) * 0.5 * float64(r.Height())
	sv.Z = -ndc.Z
	return sv, true
}

func (r *Rasterizer) drawTriangle(tri *Triangle, mv, mvp, normalMat math3d.Mat4) {
	var sv [3]screenVertex
	for i := range 3 {
		var ok bool
		sv[i], ok = r.project(tri.V[i], mv, mvp, normalMat)
		if !ok {
			// No near-plane clipping: triangles reaching behind the eye are
			// dropped whole.
			r.CullingStats.TrianglesDropped++
			return
		}
	}

	e0 := newEdge(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	e1 := newEdge(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	e2 := newEdge(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)
	area := e0.eval(sv[0].X, sv[0].Y)
	if area == 0 {
		r.CullingStats.TrianglesDropped++
		return
	}
	invArea := 1 / area

	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	invW := [3]float64{1 / sv[0].W, 1 / sv[1].W, 1 / sv[2].W}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			// Normalizing by the signed area makes coverage independent of
			// winding.
			bc := math3d.V3(
				e0.eval(px, py)*invArea,
				e1.eval(px, py)*invArea,
				e2.eval(px, py)*invArea,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// Screen-space depth is affine, no perspective correction needed.
			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z < -1 || z > 1 || z >= r.getDepth(x, y) {
				r.CullingStats.FragmentsDiscarded++
				continue
			}

			w0, w1, w2 := bc.X*invW[0], bc.Y*invW[1], bc.Z*invW[2]
			sum := w0 + w1 + w2
			w0, w1, w2 = w0/sum, w1/sum, w2/sum

			payload := shading.FragmentPayload{
				ViewPos: interp3(sv[0].ViewPos, sv[1].ViewPos, sv[2].ViewPos, w0, w1, w2),
				Normal:  interp3(sv[0].Normal, sv[1].Normal, sv[2].Normal, w0, w1, w2),
				Color:   interp3(sv[0].Color, sv[1].Color, sv[2].Color, w0, w1, w2),
				TexCoords: math3d.V2(
					w0*sv[0].UV.X+w1*sv[1].UV.X+w2*sv[2].UV.X,
					w0*sv[0].UV.Y+w1*sv[1].UV.Y+w2*sv[2].UV.Y,
				),
				Texture: r.texture,
			}

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, r.fragmentShader.Shade(payload))
			r.CullingStats.FragmentsShaded++
		}
	}
}

// TrianglesBounds returns the model-space AABB of every vertex in tris.
func TrianglesBounds(tris []Triangle) AABB {
	if len(tris) == 0 {
		return AABB{}
	}
	box := AABB{Min: tris[0].V[0].Position, Max: tris[0].V[0].Position}
	for i := range tris {
		for _, v := range tris[i].V {
			box.Min = box.Min.Min(v.Position)
			box.Max = box.Max.Max(v.Position)
		}
	}
	return box
}

func interp3(a, b, c math3d.Vec3, w0, w1, w2 float64) math3d.Vec3 {
	return a.Scale(w0).Add(b.Scale(w1)).Add(c.Scale(w2))
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
