package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/settings"
)

const (
	screenW = 80
	screenH = 24
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	s.SetSize(screenW, screenH)
	t.Cleanup(s.Fini)
	return s
}

func rowString(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func visualScene(scale float64, v asset.Visual) (*scene.Scene, *scene.Node) {
	sc := scene.New()
	sc.PlaceCamera(mgl64.Vec3{0, 0, 5})
	n := scene.NewNode(v.Name)
	n.SetUniformScale(scale)
	n.SetRenderable(v)
	sc.AddChild(n)
	return sc, n
}

type stubPanel struct{ sliders []*settings.Slider }

func (p stubPanel) Sliders() []*settings.Slider { return p.sliders }

// TestProjectorCenter verifies the target lands in the middle of the viewport
func TestProjectorCenter(t *testing.T) {
	pr := NewProjector(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, screenW, 22)

	x, y, depth, ok := pr.Project(mgl64.Vec3{})
	if !ok {
		t.Fatal("Expected target to project")
	}
	if math.Abs(x-40) > 1e-9 || math.Abs(y-11) > 1e-9 {
		t.Errorf("Expected (40, 11), got (%v, %v)", x, y)
	}
	if math.Abs(depth-5) > 1e-9 {
		t.Errorf("Expected depth 5, got %v", depth)
	}

	rx, _, _, _ := pr.Project(mgl64.Vec3{1, 0, 0})
	if rx <= x {
		t.Errorf("Expected +X right of center, got %v", rx)
	}
	_, uy, _, _ := pr.Project(mgl64.Vec3{0, 1, 0})
	if uy >= y {
		t.Errorf("Expected +Y above center, got %v", uy)
	}

	if _, _, _, ok := pr.Project(mgl64.Vec3{0, 0, 10}); ok {
		t.Error("Expected point behind the camera to be rejected")
	}
}

// TestProjectorCellAspect verifies a sphere spans CellAspect columns per row
func TestProjectorCellAspect(t *testing.T) {
	pr := NewProjector(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, screenW, 22)
	cx, cy, depth, _ := pr.Project(mgl64.Vec3{})
	rx, _, _, _ := pr.Project(mgl64.Vec3{0.1, 0, 0})
	_, uy, _, _ := pr.Project(mgl64.Vec3{0, 0.1, 0})

	cols, rows := rx-cx, cy-uy
	if math.Abs(cols/rows-CellAspect) > 1e-6 {
		t.Errorf("Expected %v columns per row, got %v", CellAspect, cols/rows)
	}
	if got := pr.RowRadius(0.1, depth); math.Abs(got-rows) > 1e-6 {
		t.Errorf("Expected row radius %v, got %v", rows, got)
	}
}

// TestProjectorStraightDown verifies a camera above the target still projects
func TestProjectorStraightDown(t *testing.T) {
	pr := NewProjector(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}, screenW, 22)
	x, y, _, ok := pr.Project(mgl64.Vec3{})
	if !ok || math.IsNaN(x) || math.IsNaN(y) {
		t.Errorf("Expected finite projection, got (%v, %v) ok=%v", x, y, ok)
	}
}

// TestDrawDisc verifies a large body fills its center with a shaded background
func TestDrawDisc(t *testing.T) {
	s := newTestScreen(t)
	sc, n := visualScene(1, asset.Visual{Name: "Sun", Glyph: "@", Color: "#ffcc33", Emissive: true})

	sprites := NewRenderer(s).Draw(sc, mgl64.Vec3{}, Status{Orbit: 1, Rotation: 1})
	if len(sprites) != 1 || sprites[0].Node != n {
		t.Fatalf("Expected one sprite for the sun, got %d", len(sprites))
	}
	if sprites[0].Rows < minDiscRows {
		t.Fatalf("Expected a disc, got %v rows", sprites[0].Rows)
	}

	_, _, style, _ := s.GetContent(40, 11)
	_, bg, _ := style.Decompose()
	if bg == tcell.ColorDefault {
		t.Error("Expected shaded background at the disc center")
	}
	_, _, corner, _ := s.GetContent(0, 0)
	if _, bg, _ := corner.Decompose(); bg != tcell.ColorDefault {
		t.Error("Expected empty corner")
	}
}

// TestDrawGlyph verifies a small body is drawn as its glyph
func TestDrawGlyph(t *testing.T) {
	s := newTestScreen(t)
	sc, _ := visualScene(0.02, asset.Visual{Name: "Earth", Glyph: "o", Color: "#3d7bd9"})

	NewRenderer(s).Draw(sc, mgl64.Vec3{}, Status{})
	if r, _, _, _ := s.GetContent(40, 11); r != 'o' {
		t.Errorf("Expected glyph 'o' at center, got %q", r)
	}
}

// TestDrawSkipsInactive verifies disabled nodes are not drawn
func TestDrawSkipsInactive(t *testing.T) {
	s := newTestScreen(t)
	sc, n := visualScene(0.02, asset.Visual{Name: "Earth", Glyph: "o", Color: "#3d7bd9"})
	n.SetEnabled(false)

	sprites := NewRenderer(s).Draw(sc, mgl64.Vec3{}, Status{})
	if len(sprites) != 0 {
		t.Errorf("Expected no sprites, got %d", len(sprites))
	}
	if r, _, _, _ := s.GetContent(40, 11); r == 'o' {
		t.Error("Expected disabled body not drawn")
	}
}

// TestDrawLabelAndPanel verifies info card titles and slider panels
func TestDrawLabelAndPanel(t *testing.T) {
	s := newTestScreen(t)
	sc := scene.New()
	sc.PlaceCamera(mgl64.Vec3{0, 0, 5})

	card := scene.NewNode("Earth/card")
	card.SetRenderable(asset.Card{Title: "Earth"})
	sc.AddChild(card)

	speeds := settings.NewSpeedSettings()
	panel := scene.NewNode("Controls")
	panel.SetLocalPosition(mgl64.Vec3{0, -1, 0})
	panel.SetRenderable(stubPanel{sliders: []*settings.Slider{settings.OrbitSlider(speeds)}})
	sc.AddChild(panel)

	NewRenderer(s).Draw(sc, mgl64.Vec3{}, Status{})

	if row := rowString(s, 10); !strings.Contains(row, "Earth") {
		t.Errorf("Expected label above the card, got %q", row)
	}
	found := false
	for y := 0; y < screenH-HUDRows; y++ {
		if strings.Contains(rowString(s, y), "Orbit") {
			found = true
		}
	}
	if !found {
		t.Error("Expected orbit slider on screen")
	}
}

// TestDrawHUD verifies the status and help rows
func TestDrawHUD(t *testing.T) {
	s := newTestScreen(t)
	sc := scene.New()
	sc.PlaceCamera(mgl64.Vec3{0, 0, 5})

	NewRenderer(s).Draw(sc, mgl64.Vec3{}, Status{Orbit: 0, Rotation: 2.5, Muted: true})

	status := rowString(s, screenH-2)
	for _, want := range []string{"orbit x0.0", "rotation x2.5", "[PAUSED]", "[MUTED]"} {
		if !strings.Contains(status, want) {
			t.Errorf("Expected %q in status row %q", want, status)
		}
	}
	if help := rowString(s, screenH-1); !strings.Contains(help, "q:quit") {
		t.Errorf("Expected help row, got %q", help)
	}
}

// TestSliderLine verifies the bar fill and multiplier text
func TestSliderLine(t *testing.T) {
	sl := settings.NewSlider("Orbit", 100, 5, nil)
	got := SliderLine(sl)
	if !strings.Contains(got, "[==========----------]") || !strings.Contains(got, "x5.0") {
		t.Errorf("Expected half filled bar at x5.0, got %q", got)
	}
}

// TestPick verifies hits, near misses and empty space
func TestPick(t *testing.T) {
	near := scene.NewNode("near")
	far := scene.NewNode("far")
	lone := scene.NewNode("lone")
	sprites := []Sprite{
		{Node: far, X: 40.5, Y: 10.5, Rows: 3, Depth: 10},
		{Node: near, X: 40.5, Y: 10.5, Rows: 1, Depth: 2},
		{Node: lone, X: 10.5, Y: 5.5, Rows: 0.1, Depth: 5},
	}

	if got := Pick(sprites, 40, 10); got != near {
		t.Errorf("Expected nearest overlapping sprite, got %v", got)
	}
	if got := Pick(sprites, 45, 10); got != far {
		t.Errorf("Expected far disc outside the near one, got %v", got)
	}
	if got := Pick(sprites, 11, 5); got != lone {
		t.Errorf("Expected small sprite within slop, got %v", got)
	}
	if got := Pick(sprites, 70, 20); got != nil {
		t.Errorf("Expected nil in empty space, got %v", got.Name())
	}
}

// TestPaletteFallback verifies malformed colors resolve to the fallback
func TestPaletteFallback(t *testing.T) {
	p := NewPalette()
	if got := p.Base("not-a-color"); got != fallbackColor {
		t.Errorf("Expected fallback, got %v", got)
	}
	red := p.Base("#ff0000")
	if r, g, b := red.RGB255(); r != 255 || g != 0 || b != 0 {
		t.Errorf("Expected pure red, got %d %d %d", r, g, b)
	}
	if dark := Shade(red, 0); dark.DistanceLab(spaceColor) > 1e-6 {
		t.Errorf("Expected zero light to be space color, got %v", dark)
	}
}
