package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CellAspect is the height of a terminal cell in units of its width
const CellAspect = 2.0

const (
	fieldOfView = 50.0
	nearPlane   = 0.05
	farPlane    = 200.0
)

// Projector maps world points into a width x height cell viewport
type Projector struct {
	view     mgl64.Mat4
	viewProj mgl64.Mat4
	focal    float64
	width    int
	height   int
}

// NewProjector looks from eye at target with +Y up
func NewProjector(eye, target mgl64.Vec3, width, height int) *Projector {
	width, height = max(width, 1), max(height, 1)
	// Each cell is CellAspect times taller than wide
	aspect := float64(width) / (float64(height) * CellAspect)

	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(target.Sub(eye).Normalize().Dot(up)) > 0.999 {
		up = mgl64.Vec3{0, 0, -1}
	}

	view := mgl64.LookAtV(eye, target, up)
	proj := mgl64.Perspective(mgl64.DegToRad(fieldOfView), aspect, nearPlane, farPlane)
	return &Projector{
		view:     view,
		viewProj: proj.Mul4(view),
		focal:    1 / math.Tan(mgl64.DegToRad(fieldOfView)/2),
		width:    width,
		height:   height,
	}
}

// Project returns the cell under world point p and its distance along the view axis
// ok is false for points behind the near plane
func (pr *Projector) Project(p mgl64.Vec3) (x, y float64, depth float64, ok bool) {
	clip := pr.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < nearPlane {
		return 0, 0, 0, false
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	x = (ndcX + 1) / 2 * float64(pr.width)
	y = (1 - ndcY) / 2 * float64(pr.height)
	return x, y, w, true
}

// RowRadius converts a world radius at depth into rows; columns are CellAspect times more
func (pr *Projector) RowRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * pr.focal / depth * float64(pr.height) / 2
}

// Visible reports whether the cell lies inside the viewport
func (pr *Projector) Visible(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(pr.width) && y < float64(pr.height)
}
