package render

import (
	"fmt"
	"image/color"
)

// PaletteSize is the number of distinct overlay colors before they repeat.
const PaletteSize = 10

// palette is ordered so neighbouring ordinals land on well separated hues.
var palette = [PaletteSize]color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // orange
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // purple
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // brown
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, // pink
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, // cyan
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, // olive
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}, // gray
}

// ColorOf returns the overlay color for an item ordinal. Negative ordinals
// map to the first color.
func ColorOf(ordinal int) color.RGBA {
	if ordinal < 0 {
		ordinal = 0
	}
	return palette[ordinal%PaletteSize]
}

// HexOf is ColorOf formatted as #rrggbb for Tk and SVG.
func HexOf(ordinal int) string {
	c := ColorOf(ordinal)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
