package render

import (
	"github.com/soocke/vision-panel-go/domain/errs"
	"github.com/soocke/vision-panel-go/domain/inference"
)

// Frame is the pixel extent spatial items are expressed in.
type Frame struct {
	Width  int
	Height int
}

// Item is one renderable entry of a result, whatever its kind.
type Item struct {
	Ordinal int
	// Key identifies the item across re-renders: the segment id for
	// segmentation, the ordinal otherwise.
	Key     int
	Label   string
	Score   float64
	Box     inference.Box
	IsThing bool
	Spatial bool
}

// Percent is the rounded score shown next to the label.
func (it Item) Percent() int { return percentOf(it.Score) }

// View is the uniform projection of a Result consumed by the overlay, the
// result list and the bar renderer.
type View struct {
	Kind  inference.ResultKind
	Items []Item
	Frame *Frame
}

// Empty reports whether the active kind has no items.
func (v View) Empty() bool { return len(v.Items) == 0 }

// Len returns the number of items.
func (v View) Len() int { return len(v.Items) }

// InRange reports whether ordinal indexes an item of v.
func (v View) InRange(ordinal int) bool { return ordinal >= 0 && ordinal < len(v.Items) }

// IndexOfKey maps an item identity back to its current ordinal, or -1.
func (v View) IndexOfKey(key int) int {
	for _, it := range v.Items {
		if it.Key == key {
			return it.Ordinal
		}
	}
	return -1
}

// Normalize projects res into a View. Exactly one kind is read; an unknown
// kind is a malformed result, never an empty view.
func Normalize(res inference.Result) (View, error) {
	v := View{Kind: res.Kind}
	switch res.Kind {
	case inference.KindDetection:
		v.Items = make([]Item, 0, len(res.Detections))
		for i, d := range res.Detections {
			v.Items = append(v.Items, Item{Ordinal: i, Key: i, Label: d.Label, Score: d.Score, Box: d.Box, IsThing: true, Spatial: true})
		}
	case inference.KindSegmentation:
		v.Items = make([]Item, 0, len(res.Segments))
		for i, s := range res.Segments {
			v.Items = append(v.Items, Item{Ordinal: i, Key: s.ID, Label: s.Label, Score: s.Score, Box: s.Box, IsThing: s.IsThing, Spatial: true})
		}
	case inference.KindClassification:
		v.Items = make([]Item, 0, len(res.Classifications))
		for i, c := range res.Classifications {
			v.Items = append(v.Items, Item{Ordinal: i, Key: i, Label: c.Label, Score: c.Score})
		}
		return v, nil
	default:
		return View{}, errs.Malformed("unknown kind %q", string(res.Kind))
	}
	if res.ImageWidth <= 0 || res.ImageHeight <= 0 {
		return View{}, errs.Malformed("%s result needs positive image size", res.Kind)
	}
	v.Frame = &Frame{Width: res.ImageWidth, Height: res.ImageHeight}
	return v, nil
}

// EmptyMessage is the affordance shown instead of a blank overlay when a
// result of the kind has no items.
func EmptyMessage(kind inference.ResultKind) string {
	switch kind {
	case inference.KindDetection:
		return "No objects detected. Try lowering the threshold."
	case inference.KindSegmentation:
		return "No segments detected. Try lowering the threshold."
	case inference.KindClassification:
		return "No classifications returned."
	}
	return "No results."
}
