// Package colors derives the pin, attribute and toggle colors used to
// tell selected nodes apart.
package colors

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// BookmarkHueDelta is the hue step between consecutive pins
	BookmarkHueDelta = 29
	// BookmarkSaturation is the saturation of pin colors
	BookmarkSaturation = 80
	// AttributeHueDelta is the hue step between consecutive attributes
	AttributeHueDelta = 53
	// AttributeSaturation is the saturation of attribute colors
	AttributeSaturation = 40
)

// BaseHue returns the hue of a #RRGGBB color in whole degrees. Unparseable
// colors have hue 0.
func BaseHue(hex string) int {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	h, _, _ := c.Hsl()
	return int(math.Round(h)) % 360
}

// PinColor returns the CSS hsl() color of the index-th item in a series
// starting at the hue of base and advancing by step degrees
func PinColor(base string, saturation, lightness, step, index int) string {
	hue := (BaseHue(base) + step*index) % 360
	if hue < 0 {
		hue += 360
	}
	return fmt.Sprintf("hsl(%d,%d%%,%d%%)", hue, saturation, clamp(lightness, 20, 80))
}

// BookmarkColor returns the color of the index-th pin
func BookmarkColor(base string, lightness, index int) string {
	return PinColor(base, BookmarkSaturation, lightness, BookmarkHueDelta, index)
}

// AttributeColor returns the color of the index-th attribute. Attributes
// walk the hue circle backwards.
func AttributeColor(base string, lightness, index int) string {
	return PinColor(base, AttributeSaturation, lightness, AttributeHueDelta, -index)
}

// TogglePinGray returns the neutral color of the toggle-all pin
func TogglePinGray(lightness int) string {
	return fmt.Sprintf("hsl(0,0%%,%d%%)", lightness)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
