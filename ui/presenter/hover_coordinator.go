package presenter

import (
	"github.com/soocke/vision-panel-go/ui/model"
	"github.com/soocke/vision-panel-go/ui/render"
)

// HoverModel is the slice of the panel model the coordinator drives.
type HoverModel interface {
	Snapshot() model.Snapshot
	SetHover(ordinal int) bool
	ClearHover() bool
}

// HoverCoordinator is the only writer of the hover slot. The result list
// calls SetHover/ClearHover on enter/leave; the overlay reports pointer
// positions in display pixels which are hit tested against the primitives.
type HoverCoordinator struct {
	model         HoverModel
	displayWidth  int
	displayHeight int
}

// NewHoverCoordinator returns a coordinator for an overlay of the given display size.
func NewHoverCoordinator(m HoverModel, displayWidth, displayHeight int) *HoverCoordinator {
	return &HoverCoordinator{model: m, displayWidth: displayWidth, displayHeight: displayHeight}
}

// SetHover marks ordinal as hovered. Out of range ordinals are ignored.
func (h *HoverCoordinator) SetHover(ordinal int) {
	if h == nil || h.model == nil {
		return
	}
	h.model.SetHover(ordinal)
}

// ClearHover empties the hover slot.
func (h *HoverCoordinator) ClearHover() {
	if h == nil || h.model == nil {
		return
	}
	h.model.ClearHover()
}

// PointerAt hovers the top most primitive under a display point, or clears
// the slot when the pointer is over no primitive.
func (h *HoverCoordinator) PointerAt(x, y int) {
	if h == nil || h.model == nil {
		return
	}
	snap := h.model.Snapshot()
	if !snap.HasResult || !snap.OverlayVisible || snap.View.Frame == nil {
		h.model.ClearHover()
		return
	}
	prims := render.BuildOverlay(snap.View, snap.Hover, true)
	ix, iy := render.Fit(*snap.View.Frame, h.displayWidth, h.displayHeight).ToImage(float64(x), float64(y))
	if ord := render.HitTest(prims, ix, iy); ord >= 0 {
		h.model.SetHover(ord)
		return
	}
	h.model.ClearHover()
}

// PointerLeft clears the hover slot when the pointer leaves the overlay.
func (h *HoverCoordinator) PointerLeft() { h.ClearHover() }
