package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soocke/vision-panel-go/domain/inference"
)

func TestFitContain(t *testing.T) {
	// 640x480 into a 320x320 box: width bound, letterboxed vertically
	tr := Fit(Frame{Width: 640, Height: 480}, 320, 320)
	assert.InDelta(t, 0.5, tr.Scale, 1e-9)
	assert.InDelta(t, 0, tr.OffsetX, 1e-9)
	assert.InDelta(t, 40, tr.OffsetY, 1e-9)

	dx, dy := tr.ToDisplay(640, 480)
	assert.InDelta(t, 320, dx, 1e-9)
	assert.InDelta(t, 280, dy, 1e-9)

	ix, iy := tr.ToImage(dx, dy)
	assert.InDelta(t, 640, ix, 1e-9)
	assert.InDelta(t, 480, iy, 1e-9)
}

func TestFitDegenerate(t *testing.T) {
	assert.Equal(t, Transform{Scale: 1}, Fit(Frame{}, 100, 100))
}

func TestLabelFontSizeBounds(t *testing.T) {
	assert.Equal(t, MinLabelFont, LabelFontSize(20))
	assert.Equal(t, MaxLabelFont, LabelFontSize(5000))
	assert.InDelta(t, 12, LabelFontSize(300), 1e-9)
}

func TestLabelText(t *testing.T) {
	assert.Equal(t, "cat 91%", LabelText("cat", 0.91))
	assert.Equal(t, "dog 52%", LabelText("dog", 0.52))
	assert.Equal(t, "x 100%", LabelText("x", 0.999))
}

func TestPlaceChipAboveBox(t *testing.T) {
	c := placeChip(inference.Box{X1: 100, Y1: 100, X2: 200, Y2: 200}, "cat 91%", Frame{Width: 640, Height: 480})
	assert.Equal(t, 10.0, c.FontSize)
	assert.InDelta(t, 2.5, c.Padding, 1e-9)
	assert.InDelta(t, 15, c.H, 1e-9)
	assert.InDelta(t, 7*10*0.6+5, c.W, 1e-9)
	assert.InDelta(t, 85, c.Y, 1e-9)
	assert.Equal(t, 100.0, c.X)
}

func TestPlaceChipClampsToFrame(t *testing.T) {
	c := placeChip(inference.Box{X1: 630, Y1: 2, X2: 640, Y2: 50}, "person 88%", Frame{Width: 640, Height: 480})
	assert.Equal(t, 2.0, c.Y, "chip moves inside the box at the top edge")
	assert.InDelta(t, 640, c.X+c.W, 1e-9)
	assert.False(t, math.Signbit(c.X))
}
