package render

import (
	"math"
	"strconv"

	"github.com/soocke/vision-panel-go/domain/inference"
)

// Label chip sizing, in image pixel units.
const (
	MinLabelFont     = 10.0
	MaxLabelFont     = 18.0
	labelFontRatio   = 0.04
	labelCharWidth   = 0.6
	labelPaddingRate = 0.25
)

// Transform maps image coordinates onto the display box: display = image*Scale + Offset.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit computes the aspect preserving "contain" transform of frame inside a
// displayW x displayH box. The image is centered on the axis with slack.
func Fit(frame Frame, displayW, displayH int) Transform {
	if frame.Width <= 0 || frame.Height <= 0 || displayW <= 0 || displayH <= 0 {
		return Transform{Scale: 1}
	}
	sx := float64(displayW) / float64(frame.Width)
	sy := float64(displayH) / float64(frame.Height)
	s := math.Min(sx, sy)
	return Transform{
		Scale:   s,
		OffsetX: (float64(displayW) - float64(frame.Width)*s) / 2,
		OffsetY: (float64(displayH) - float64(frame.Height)*s) / 2,
	}
}

// ToDisplay maps an image point to display coordinates.
func (t Transform) ToDisplay(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}

// ToImage inverts ToDisplay, for pointer hit testing.
func (t Transform) ToImage(dx, dy float64) (float64, float64) {
	if t.Scale == 0 {
		return dx, dy
	}
	return (dx - t.OffsetX) / t.Scale, (dy - t.OffsetY) / t.Scale
}

// LabelChip is the text badge drawn with a primitive.
type LabelChip struct {
	Text     string
	X, Y     float64
	W, H     float64
	FontSize float64
	Padding  float64
}

// Rect returns the chip as a box.
func (c LabelChip) Rect() inference.Box {
	return inference.Box{X1: c.X, Y1: c.Y, X2: c.X + c.W, Y2: c.Y + c.H}
}

// LabelFontSize scales with the box width and stays within
// [MinLabelFont, MaxLabelFont].
func LabelFontSize(boxWidth float64) float64 {
	return clamp(boxWidth*labelFontRatio, MinLabelFont, MaxLabelFont)
}

// LabelText formats "<label> <percent>%".
func LabelText(label string, score float64) string {
	return label + " " + strconv.Itoa(percentOf(score)) + "%"
}

// placeChip sizes the chip from its text and sets it on the box's top edge.
// A chip that would leave the frame at the top moves inside the box; it is
// also kept inside the frame horizontally.
func placeChip(box inference.Box, text string, frame Frame) LabelChip {
	fs := LabelFontSize(box.Width())
	pad := fs * labelPaddingRate
	c := LabelChip{
		Text:     text,
		FontSize: fs,
		Padding:  pad,
		W:        float64(len([]rune(text)))*fs*labelCharWidth + 2*pad,
		H:        fs + 2*pad,
		X:        box.X1,
	}
	c.Y = box.Y1 - c.H
	if c.Y < 0 {
		c.Y = box.Y1
	}
	if fw := float64(frame.Width); fw > 0 && c.X+c.W > fw {
		c.X = fw - c.W
	}
	if c.X < 0 {
		c.X = 0
	}
	return c
}

func percentOf(score float64) int {
	return int(math.Round(clamp(score, 0, 1) * 100))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
