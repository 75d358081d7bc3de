package images

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := solid(400, 200, color.RGBA{R: 255, A: 255})
	out := ScaleToFit(src, 100, 100)
	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50, got %dx%d", b.Dx(), b.Dy())
	}
	if ScaleToFit(src, 500, 500) != image.Image(src) {
		t.Fatalf("an image that fits should be returned as is")
	}
}

func TestFitInto_Letterboxes(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	bg := color.RGBA{A: 255}
	out := FitInto(solid(640, 480, red), 320, 320, bg)
	if b := out.Bounds(); b.Dx() != 320 || b.Dy() != 320 {
		t.Fatalf("canvas should be the display size, got %v", b)
	}
	// 640x480 scales by 0.5 to 320x240, centered with 40px bands
	if got := out.RGBAAt(160, 10); got != bg {
		t.Fatalf("expected background in the top band, got %v", got)
	}
	if got := out.RGBAAt(160, 160); got.R < 250 || got.G > 5 || got.B > 5 {
		t.Fatalf("expected image pixels in the middle, got %v", got)
	}
	if got := out.RGBAAt(160, 310); got != bg {
		t.Fatalf("expected background in the bottom band, got %v", got)
	}
}

func TestFitInto_NilSource(t *testing.T) {
	out := FitInto(nil, 10, 5, color.White)
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 5 {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
}

func TestEncodePNG(t *testing.T) {
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
	b := EncodePNG(solid(2, 2, color.RGBA{G: 255, A: 255}))
	if len(b) < 8 || string(b[1:4]) != "PNG" {
		t.Fatalf("expected PNG signature")
	}
}
