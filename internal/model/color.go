package model

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with channels in [0,1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var (
	ColorWhite  = Color{R: 1, G: 1, B: 1, A: 1}
	ColorBlack  = Color{A: 1}
	ColorYellow = Color{R: 1, G: 0.92, B: 0.016, A: 1}
)

func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// ParseColor accepts #rgb or #rrggbb, with or without the leading '#'.
func ParseColor(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Color{}, fmt.Errorf("model: empty color")
	}
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	cc, err := colorful.Hex(raw)
	if err != nil {
		return Color{}, fmt.Errorf("model: invalid color %q: %w", s, err)
	}
	return Color{R: cc.R, G: cc.G, B: cc.B, A: 1}, nil
}

// Emphasis is the background used to highlight a selected row tinted with c.
// White tags would vanish on a white highlight, so they get black.
func (c Color) Emphasis() Color {
	if c.Hex() == ColorWhite.Hex() {
		return ColorBlack
	}
	return c
}

func (c Color) Equal(o Color) bool {
	return c.Hex() == o.Hex() && c.A == o.A
}
