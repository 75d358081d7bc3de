package render

import (
	"image/color"

	"github.com/soocke/vision-panel-go/domain/inference"
)

// Shape selects how a primitive's box is drawn.
type Shape int

const (
	// ShapeOutline is an unfilled rectangle (detection).
	ShapeOutline Shape = iota
	// ShapeFilled is a translucent filled rectangle (segmentation).
	ShapeFilled
)

// Hover is the optional hovered ordinal.
type Hover struct {
	Ordinal int
	Active  bool
}

// NoHover is the empty hover slot.
func NoHover() Hover { return Hover{} }

// HoverAt returns a hover slot holding ordinal.
func HoverAt(ordinal int) Hover { return Hover{Ordinal: ordinal, Active: true} }

// Is reports whether ordinal is the hovered one.
func (h Hover) Is(ordinal int) bool { return h.Active && h.Ordinal == ordinal }

// Primitive is one drawable overlay element, in image pixel units.
type Primitive struct {
	Ordinal       int
	Key           int
	Shape         Shape
	Box           inference.Box
	Color         color.RGBA
	Hex           string
	StrokeWidth   float64
	StrokeOpacity float64
	FillOpacity   float64
	Dashed        bool
	Hovered       bool
	Chip          LabelChip
}

// Contains reports whether the image point lies on the box or its chip.
func (p Primitive) Contains(x, y float64) bool {
	return p.Box.Contains(x, y) || p.Chip.Rect().Contains(x, y)
}

type emphasis struct {
	stroke, strokeOpacity, fill float64
}

var (
	detectionStyle = [2]emphasis{{2, 0.85, 0}, {4, 1, 0}}
	segmentStyle   = [2]emphasis{{1.5, 0.7, 0.25}, {3, 1, 0.45}}
)

// BuildOverlay returns one primitive per item in draw order. Nothing is drawn
// for a hidden overlay, an empty result or a non spatial kind.
func BuildOverlay(v View, hover Hover, visible bool) []Primitive {
	if !visible || v.Frame == nil || !v.Kind.Spatial() || v.Empty() {
		return nil
	}
	prims := make([]Primitive, 0, len(v.Items))
	for _, it := range v.Items {
		hovered := hover.Is(it.Ordinal)
		idx := 0
		if hovered {
			idx = 1
		}
		p := Primitive{
			Ordinal: it.Ordinal,
			Key:     it.Key,
			Box:     it.Box,
			Color:   ColorOf(it.Ordinal),
			Hex:     HexOf(it.Ordinal),
			Hovered: hovered,
			Chip:    placeChip(it.Box, LabelText(it.Label, it.Score), *v.Frame),
		}
		style := detectionStyle[idx]
		if v.Kind == inference.KindSegmentation {
			style = segmentStyle[idx]
			p.Shape = ShapeFilled
			p.Dashed = !it.IsThing
		}
		p.StrokeWidth, p.StrokeOpacity, p.FillOpacity = style.stroke, style.strokeOpacity, style.fill
		prims = append(prims, p)
	}
	return prims
}

// HitTest returns the ordinal of the top most primitive under the image point,
// or -1.
func HitTest(prims []Primitive, x, y float64) int {
	for i := len(prims) - 1; i >= 0; i-- {
		if prims[i].Contains(x, y) {
			return prims[i].Ordinal
		}
	}
	return -1
}
