package images

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/vision-panel-go/ui/render"
)

var (
	white  = image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadow = image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 160})
)

// Composite draws the overlay primitives onto a copy of base. Primitive
// coordinates are in image units and are mapped with tr. The exported SVG is
// the exact rendering; this raster is what the Tk photo shows. The result
// comes from the canvas pool and may be handed back with RecycleCanvas.
func Composite(base image.Image, prims []render.Primitive, tr render.Transform) *image.RGBA {
	b := base.Bounds()
	out := AcquireCanvas(b)
	draw.Draw(out, b, base, b.Min, draw.Src)
	for _, p := range prims {
		drawPrimitive(out, p, tr)
	}
	return out
}

func drawPrimitive(dst *image.RGBA, p render.Primitive, tr render.Transform) {
	r := displayRect(p.Box.X1, p.Box.Y1, p.Box.X2, p.Box.Y2, tr)
	if p.FillOpacity > 0 {
		draw.Draw(dst, r, image.NewUniform(withAlpha(p.Color, p.FillOpacity)), image.Point{}, draw.Over)
	}
	stroke := max(int(math.Round(p.StrokeWidth*tr.Scale)), 1)
	strokeRect(dst, r, stroke, withAlpha(p.Color, p.StrokeOpacity), p.Dashed)

	c := p.Chip
	cr := displayRect(c.X, c.Y, c.X+c.W, c.Y+c.H, tr)
	chipAlpha := 0.85
	if p.Hovered {
		chipAlpha = 1
	}
	draw.Draw(dst, cr, image.NewUniform(withAlpha(p.Color, chipAlpha)), image.Point{}, draw.Over)
	drawChipText(dst, cr, c, tr, p.Hovered)
}

// drawChipText renders the label at 7x13 into a scratch image and scales it
// into the chip's padded interior. The text then follows the chip's font size
// and the display scale, and never leaves the chip.
func drawChipText(dst *image.RGBA, cr image.Rectangle, c render.LabelChip, tr render.Transform, bold bool) {
	if c.Text == "" {
		return
	}
	inner := cr.Inset(int(math.Round(c.Padding * tr.Scale)))
	if inner.Dx() <= 0 || inner.Dy() <= 0 {
		return
	}
	face := basicfont.Face7x13
	m := face.Metrics()
	w := font.MeasureString(face, c.Text).Ceil() + 2 // bold pass and shadow
	h := m.Height.Ceil() + 1
	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	drawText(scratch, c.Text, 0, m.Ascent.Ceil(), white, bold, true)

	s := math.Min(float64(inner.Dx())/float64(w), float64(inner.Dy())/float64(h))
	tw, th := max(int(float64(w)*s), 1), max(int(float64(h)*s), 1)
	y0 := inner.Min.Y + (inner.Dy()-th)/2
	target := image.Rect(inner.Min.X, y0, inner.Min.X+tw, y0+th)
	xdraw.ApproxBiLinear.Scale(dst, target, scratch, scratch.Bounds(), xdraw.Over, nil)
}

// strokeRect outlines r with the given width, dashed when asked.
func strokeRect(dst *image.RGBA, r image.Rectangle, width int, c color.Color, dashed bool) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width),
		image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width),
	}
	for i, e := range edges {
		if !dashed {
			draw.Draw(dst, e, src, image.Point{}, draw.Over)
			continue
		}
		horizontal := i < 2
		const on, off = 6, 4
		if horizontal {
			for x := e.Min.X; x < e.Max.X; x += on + off {
				draw.Draw(dst, image.Rect(x, e.Min.Y, min(x+on, e.Max.X), e.Max.Y), src, image.Point{}, draw.Over)
			}
			continue
		}
		for y := e.Min.Y; y < e.Max.Y; y += on + off {
			draw.Draw(dst, image.Rect(e.Min.X, y, e.Max.X, min(y+on, e.Max.Y)), src, image.Point{}, draw.Over)
		}
	}
}

// BarStyle holds the colors of the classification bar chart.
type BarStyle struct {
	Background color.Color
	Track      color.Color
	Accent     color.Color
	Muted      color.Color
	Text       color.Color
}

const (
	barRowHeight = 24
	barLabelW    = 150
	barTextW     = 44
)

// RenderBars draws ranked bars, one row each, width pixels wide. The top
// ranked bar uses the accent color and bold text; the rest are muted.
func RenderBars(bars []render.Bar, width int, style BarStyle) *image.RGBA {
	width = max(width, barLabelW+barTextW+20)
	h := max(len(bars)*barRowHeight, 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	face := basicfont.Face7x13
	text := image.NewUniform(style.Text)
	trackW := width - barLabelW - barTextW
	for i, bar := range bars {
		top := i * barRowHeight
		baseline := top + (barRowHeight+face.Metrics().Ascent.Ceil())/2
		drawText(dst, fitText(face, bar.Label, barLabelW-8), 4, baseline, text, bar.Emphasized, false)

		track := image.Rect(barLabelW, top+6, barLabelW+trackW, top+barRowHeight-6)
		draw.Draw(dst, track, image.NewUniform(style.Track), image.Point{}, draw.Src)
		fill := style.Muted
		if bar.Emphasized {
			fill = style.Accent
		}
		fw := int(math.Round(float64(trackW) * bar.FillPercent / 100))
		draw.Draw(dst, image.Rect(track.Min.X, track.Min.Y, track.Min.X+fw, track.Max.Y), image.NewUniform(fill), image.Point{}, draw.Src)

		drawText(dst, bar.Text, barLabelW+trackW+6, baseline, text, bar.Emphasized, false)
	}
	return dst
}

// drawText writes s with its baseline at y. Bold is faked by a second pass
// one pixel to the right.
func drawText(dst draw.Image, s string, x, y int, src image.Image, bold, shadowed bool) {
	face := basicfont.Face7x13
	if shadowed {
		sh := &font.Drawer{Dst: dst, Src: shadow, Face: face, Dot: fixed.P(x+1, y+1)}
		sh.DrawString(s)
	}
	dr := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: fixed.P(x, y)}
	dr.DrawString(s)
	if bold {
		dr.Dot = fixed.P(x+1, y)
		dr.DrawString(s)
	}
}

// ellipsis is ASCII because basicfont has no glyph for U+2026.
const ellipsis = "..."

// fitText trims s with an ellipsis until it fits in w pixels.
func fitText(face font.Face, s string, w int) string {
	if font.MeasureString(face, s).Ceil() <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && font.MeasureString(face, string(r)+ellipsis).Ceil() > w {
		r = r[:len(r)-1]
	}
	return string(r) + ellipsis
}

func displayRect(x1, y1, x2, y2 float64, tr render.Transform) image.Rectangle {
	ax, ay := tr.ToDisplay(x1, y1)
	bx, by := tr.ToDisplay(x2, y2)
	return image.Rect(round(ax), round(ay), round(bx), round(by))
}

func withAlpha(c color.RGBA, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))}
}
