package render

// edge holds the coefficients of the edge function through two screen points:
// e(x,y) = A*x + B*y + C. The sign tells which side of the directed edge
// (x,y) lies on; zero is on the line.
type edge struct {
	A, B, C float64
}

func newEdge(x0, y0, x1, y1 float64) edge {
	return edge{
		A: y0 - y1,
		B: x1 - x0,
		C: x0*y1 - x1*y0,
	}
}

func (e edge) eval(x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}
