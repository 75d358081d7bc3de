package view

import (
	"image"

	"github.com/soocke/vision-panel-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// OverlayView shows the displayed image with the overlay composited on it and
// reports pointer motion in display pixels.
type OverlayView interface {
	SetImage(img image.Image)
}

type overlayView struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo, deleted before it is replaced
}

// NewOverlayView creates the overlay label at row and binds pointer handlers.
// onMove receives label relative coordinates; onLeave fires when the pointer
// leaves the image.
func NewOverlayView(parent *FrameWidget, row, width, height int, onMove func(x, y int), onLeave func()) OverlayView {
	placeholder := image.NewRGBA(image.Rect(0, 0, width, height))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	lbl := Label(Image(photo), Borderwidth(0), Relief("flat"))
	Grid(lbl, In(parent), Row(row), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	if onMove != nil {
		Bind(lbl, "<Motion>", Command(func(e *Event) {
			if x, y, ok := pointerOf(e); ok {
				onMove(x, y)
			}
		}))
	}
	if onLeave != nil {
		Bind(lbl, "<Leave>", Command(onLeave))
	}
	return &overlayView{label: lbl, prevPhoto: photo}
}

func (v *overlayView) SetImage(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}

// pointerOf extracts the label relative pointer position of a motion event.
func pointerOf(e *Event) (x, y int, ok bool) {
	if e == nil {
		return 0, 0, false
	}
	return e.X, e.Y, true
}
