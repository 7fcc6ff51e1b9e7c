package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseHue(t *testing.T) {
	assert.Equal(t, 0, BaseHue("#FF0000"))
	assert.Equal(t, 120, BaseHue("#00FF00"))
	assert.Equal(t, 240, BaseHue("#0000FF"))
	assert.Equal(t, 0, BaseHue("not a color"))
}

func TestPinColor(t *testing.T) {
	assert.Equal(t, "hsl(0,80%,75%)", BookmarkColor("#FF0000", 75, 0))
	assert.Equal(t, "hsl(58,80%,75%)", BookmarkColor("#FF0000", 75, 2))

	// Lightness is clamped to [20,80]
	assert.Equal(t, "hsl(0,80%,80%)", BookmarkColor("#FF0000", 95, 0))
	assert.Equal(t, "hsl(0,80%,20%)", BookmarkColor("#FF0000", 5, 0))
}

func TestAttributeColorWrapsAround(t *testing.T) {
	assert.Equal(t, "hsl(0,40%,50%)", AttributeColor("#FF0000", 50, 0))
	assert.Equal(t, "hsl(307,40%,50%)", AttributeColor("#FF0000", 50, 1))
}

func TestTogglePinGray(t *testing.T) {
	assert.Equal(t, "hsl(0,0%,75%)", TogglePinGray(75))
}
