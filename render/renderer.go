// Package render draws a scene to a terminal screen
package render

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/settings"
)

const (
	// HUDRows are reserved at the bottom of the screen
	HUDRows = 2

	// VisualRadius is the world radius of a visual at unit scale
	VisualRadius = 0.25

	// Below this many rows a body is drawn as its glyph
	minDiscRows = 0.75

	sliderWidth = 20
)

// Lambert light from the upper left, toward the viewer
var lightX, lightY, lightZ = func() (float64, float64, float64) {
	lx, ly, lz := -0.35, -0.55, 0.75
	m := math.Sqrt(lx*lx + ly*ly + lz*lz)
	return lx / m, ly / m, lz / m
}()

// SliderSource is a renderable drawn as a column of sliders
type SliderSource interface {
	Sliders() []*settings.Slider
}

// Sprite is a projected visual, the unit of drawing and picking
type Sprite struct {
	Node   *scene.Node
	Visual asset.Visual
	X, Y   float64
	Rows   float64
	Depth  float64
}

// Status is the viewer state shown in the HUD
type Status struct {
	Orbit    float64
	Rotation float64
	Elapsed  time.Duration
	Muted    bool
	Message  string
}

// Renderer projects scene renderables onto a tcell screen
type Renderer struct {
	screen  tcell.Screen
	palette *Palette
	sprites []Sprite
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, palette: NewPalette()}
}

type label struct {
	text     string
	x, y     float64
	depth    float64
	anchored bool
}

// Draw renders one frame viewed from the scene camera toward target
// Returns the drawn sprites far to near
func (r *Renderer) Draw(sc *scene.Scene, target mgl64.Vec3, st Status) []Sprite {
	w, h := r.screen.Size()
	viewH := max(h-HUDRows, 1)
	pr := NewProjector(sc.Camera().WorldPosition(), target, w, viewH)

	r.sprites = r.sprites[:0]
	var labels []label
	var panels []SliderSource
	var panelPos []label

	sc.Root().Walk(func(n *scene.Node) bool {
		if !n.Active() {
			return false
		}
		switch v := n.Renderable().(type) {
		case asset.Visual:
			x, y, depth, ok := pr.Project(n.WorldPosition())
			if !ok {
				return true
			}
			radius := worldScale(n) * VisualRadius
			r.sprites = append(r.sprites, Sprite{
				Node:   n,
				Visual: v,
				X:      x,
				Y:      y,
				Rows:   pr.RowRadius(radius, depth),
				Depth:  depth,
			})
		case asset.Card:
			x, y, depth, ok := pr.Project(n.WorldPosition())
			if ok {
				labels = append(labels, label{text: v.Title, x: x, y: y, depth: depth, anchored: true})
			}
		case SliderSource:
			x, y, _, ok := pr.Project(n.WorldPosition())
			panels = append(panels, v)
			panelPos = append(panelPos, label{x: x, y: y, anchored: ok})
		}
		return true
	})

	sort.SliceStable(r.sprites, func(i, j int) bool {
		return r.sprites[i].Depth > r.sprites[j].Depth
	})

	r.screen.Clear()
	for _, s := range r.sprites {
		r.drawSprite(s, pr, w, viewH)
	}
	for _, l := range labels {
		r.drawLabel(l, w, viewH)
	}
	for i, p := range panels {
		r.drawPanel(p, panelPos[i], w, viewH)
	}
	r.drawHUD(st, w, h)
	r.screen.Show()

	return r.sprites
}

func (r *Renderer) drawSprite(s Sprite, pr *Projector, screenW, viewH int) {
	base := r.palette.Base(s.Visual.Color)

	if s.Rows < minDiscRows {
		if !pr.Visible(s.X, s.Y) {
			return
		}
		glyph := '*'
		if g := []rune(s.Visual.Glyph); len(g) > 0 {
			glyph = g[0]
		}
		style := tcell.StyleDefault.Foreground(ToTcell(base))
		if s.Visual.Emissive {
			style = style.Bold(true)
		}
		r.screen.SetContent(int(s.X), int(s.Y), glyph, nil, style)
		return
	}

	ry := s.Rows
	rx := ry * CellAspect
	minX := max(0, int(s.X-rx-1))
	maxX := min(screenW-1, int(s.X+rx+1))
	minY := max(0, int(s.Y-ry-1))
	maxY := min(viewH-1, int(s.Y+ry+1))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - s.X) / rx
			ny := (float64(sy) + 0.5 - s.Y) / ry
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			nz := math.Sqrt(1 - distSq)

			c := base
			if s.Visual.Emissive {
				// Hot center
				c = Glow(base, nz*0.4)
			} else {
				diffuse := max(0, nx*lightX+ny*lightY+nz*lightZ)
				c = Shade(base, 0.2+0.8*diffuse)
			}
			r.screen.SetContent(sx, sy, ' ', nil, tcell.StyleDefault.Background(ToTcell(c)))
		}
	}
}

func (r *Renderer) drawLabel(l label, screenW, viewH int) {
	text := []rune(l.text)
	x := int(l.x) - len(text)/2
	y := int(l.y) - 1
	if y < 0 || y >= viewH {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	writeStr(r.screen, max(0, min(x, screenW-len(text))), y, l.text, style)
}

func (r *Renderer) drawPanel(p SliderSource, at label, screenW, viewH int) {
	x, y := 1, 0
	if at.anchored && at.y >= 0 && int(at.y) < viewH {
		x, y = int(at.x)+2, int(at.y)
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 220, 230))
	for _, sl := range p.Sliders() {
		if y >= viewH {
			return
		}
		line := SliderLine(sl)
		writeStr(r.screen, max(0, min(x, screenW-len([]rune(line)))), y, line, style)
		y++
	}
}

// SliderLine formats a slider as a label, a bar and its multiplier
func SliderLine(sl *settings.Slider) string {
	filled := sl.Progress() * sliderWidth / sl.Max
	bar := make([]rune, sliderWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '='
		} else {
			bar[i] = '-'
		}
	}
	return fmt.Sprintf("%-8s [%s] x%.1f", sl.Label, string(bar), sl.Multiplier())
}

func (r *Renderer) drawHUD(st Status, screenW, screenH int) {
	statusY := screenH - 2
	controlY := screenH - 1
	if statusY < 0 {
		return
	}
	dim := tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 100, 110))
	bright := tcell.StyleDefault.Foreground(tcell.NewRGBColor(230, 230, 240))
	warn := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 200, 50))

	s := fmt.Sprintf("orbit x%.1f  rotation x%.1f  t=%.1fs", st.Orbit, st.Rotation, st.Elapsed.Seconds())
	writeStr(r.screen, 1, statusY, s, bright)
	x := 1 + len(s) + 2
	if st.Orbit == 0 {
		writeStr(r.screen, x, statusY, "[PAUSED]", warn)
		x += len("[PAUSED]") + 1
	}
	if st.Muted {
		writeStr(r.screen, x, statusY, "[MUTED]", dim)
		x += len("[MUTED]") + 1
	}
	if st.Message != "" {
		writeStr(r.screen, x+1, statusY, st.Message, dim)
	}

	writeStr(r.screen, 1, controlY, "[ ]:orbit  { }:rotation  0:pause  arrows:camera  m:mute  click:info  q:quit", dim)
}

func writeStr(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// worldScale is the length of the world transform's first basis vector
func worldScale(n *scene.Node) float64 {
	return n.WorldTransform().Col(0).Vec3().Len()
}
