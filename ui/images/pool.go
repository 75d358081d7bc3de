package images

import (
	"image"
	"sync"
)

// Reusable canvas pool. Every hover change re-composites the overlay at
// display size; recycling the previous canvas keeps the UI tick from
// allocating a fresh backing slice per pointer move.
//
// AcquireCanvas returns an RGBA whose Pix capacity is at least rect area * 4.
// Callers hand a canvas back with RecycleCanvas once nothing reads it.

var canvasPool sync.Pool // stores *image.RGBA

// AcquireCanvas returns a reusable RGBA image sized to rect. Pixel contents
// are unspecified.
func AcquireCanvas(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := canvasPool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// RecycleCanvas returns img to the pool. The caller must not use it afterwards.
func RecycleCanvas(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	canvasPool.Put(img)
}
