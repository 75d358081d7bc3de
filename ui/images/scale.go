package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/soocke/vision-panel-go/ui/render"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src so that it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	newW := max(int(float64(w)*ratio+0.5), 1)
	newH := max(int(float64(h)*ratio+0.5), 1)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// FitInto returns a w x h canvas filled with bg with src drawn "contain"
// fitted and centered, the same placement render.Fit computes for overlays.
// A nil src yields the bare canvas.
func FitInto(src image.Image, w, h int, bg color.Color) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	if src == nil {
		return dst
	}
	b := src.Bounds()
	if b.Empty() {
		return dst
	}
	tr := render.Fit(render.Frame{Width: b.Dx(), Height: b.Dy()}, w, h)
	x0, y0 := tr.ToDisplay(0, 0)
	x1, y1 := tr.ToDisplay(float64(b.Dx()), float64(b.Dy()))
	target := image.Rect(round(x0), round(y0), round(x1), round(y1))
	xdraw.ApproxBiLinear.Scale(dst, target, src, b, xdraw.Over, nil)
	return dst
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
