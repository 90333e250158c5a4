package render

import (
	"github.com/lixenwraith/orrery/scene"
)

// pickSlop is the search radius in rows around a click that misses every disc
const pickSlop = 1.5

// Pick returns the nearest sprite node under cell (x, y), nil when nothing is close
// sprites must be ordered far to near, as returned by Draw
func Pick(sprites []Sprite, x, y int) *scene.Node {
	px, py := float64(x)+0.5, float64(y)+0.5

	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		ry := max(s.Rows, 0.5)
		rx := ry * CellAspect
		nx, ny := (px-s.X)/rx, (py-s.Y)/ry
		if nx*nx+ny*ny <= 1 {
			return s.Node
		}
	}

	// Closest center within the slop, columns counted at cell aspect
	var best *scene.Node
	bestDist := pickSlop * pickSlop
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		dx, dy := (px-s.X)/CellAspect, py-s.Y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = s.Node, d
		}
	}
	return best
}
