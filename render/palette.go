package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	fallbackColor = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
	spaceColor    = colorful.Color{R: 0.02, G: 0.02, B: 0.06}
)

// Palette resolves catalog hex colors and shades them toward space
type Palette struct {
	mu    sync.Mutex
	cache map[string]colorful.Color
}

func NewPalette() *Palette {
	return &Palette{cache: make(map[string]colorful.Color)}
}

// Base parses hex, falling back to light grey for malformed values
func (p *Palette) Base(hex string) colorful.Color {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.cache[hex]; ok {
		return c
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c = fallbackColor
	}
	p.cache[hex] = c
	return c
}

// Shade blends base toward the background; light 1 is the full base color
func Shade(base colorful.Color, light float64) colorful.Color {
	light = max(0, min(1, light))
	return spaceColor.BlendLab(base, light).Clamped()
}

// Glow brightens base toward white by t
func Glow(base colorful.Color, t float64) colorful.Color {
	t = max(0, min(1, t))
	return base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped()
}

// ToTcell converts to a true color terminal color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
