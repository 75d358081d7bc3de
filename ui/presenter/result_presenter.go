package presenter

import (
	"image"
	"image/color"

	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/ui/images"
	"github.com/soocke/vision-panel-go/ui/model"
	"github.com/soocke/vision-panel-go/ui/render"
)

// MessageKind tells the view how to style the inline message.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageInfo
	MessageEmpty
	MessageError
)

// ListEntry is one row of the result list.
type ListEntry struct {
	Ordinal int
	Text    string
	Color   string
	Hovered bool
}

// ControlState is what the control bar shows.
type ControlState struct {
	Models            []inference.ModelDescriptor
	Selected          string
	Threshold         float64
	ThresholdVisible  bool
	ThresholdEditable bool
	RunEnabled        bool
	Running           bool
	ToggleEnabled     bool
	OverlayVisible    bool
	ExportEnabled     bool
}

// ResultView is the UI surface updated by the result presenter.
type ResultView interface {
	SetControls(ControlState)
	SetMessage(text string, kind MessageKind)
	// SetOverlay shows img; the view must not keep img after returning.
	SetOverlay(img image.Image)
	SetEntries(entries []ListEntry)
	// SetBars shows the classification chart; nil hides it.
	SetBars(img image.Image)
}

// ResultPresenter renders the panel model into the overlay, the result list,
// the bar chart and the control bar. It re-renders only when the model's
// revision changes, so both hover consumers always see the same state.
type ResultPresenter struct {
	model  *model.PanelModel
	view   ResultView
	width  int
	height int
	bars   images.BarStyle
	bg     color.Color

	base     image.Image
	canvas   *image.RGBA
	overlay  *image.RGBA // last composite, recycled on the next render
	lastRev  uint64
	rendered bool
}

// NewResultPresenter returns a presenter drawing into a width x height overlay.
func NewResultPresenter(m *model.PanelModel, view ResultView, width, height int, bars images.BarStyle, bg color.Color) *ResultPresenter {
	if bg == nil {
		bg = color.Black
	}
	p := &ResultPresenter{model: m, view: view, width: width, height: height, bars: bars, bg: bg}
	p.canvas = images.FitInto(nil, width, height, bg)
	return p
}

// SetBaseImage sets the displayed image the overlay is drawn on.
func (p *ResultPresenter) SetBaseImage(img image.Image) {
	if p == nil {
		return
	}
	p.base = img
	p.canvas = images.FitInto(img, p.width, p.height, p.bg)
	p.rendered = false
}

// SetStyle changes the chart and letterbox colors, for example after a theme
// switch, and forces a re-render.
func (p *ResultPresenter) SetStyle(bars images.BarStyle, bg color.Color) {
	if p == nil {
		return
	}
	if bg != nil {
		p.bg = bg
		p.canvas = images.FitInto(p.base, p.width, p.height, bg)
	}
	p.bars = bars
	p.rendered = false
}

// Tick pushes the current model state to the view when it changed.
func (p *ResultPresenter) Tick() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	rev := p.model.Revision()
	if p.rendered && rev == p.lastRev {
		return
	}
	p.render(p.model.Snapshot())
	p.lastRev = rev
	p.rendered = true
}

func (p *ResultPresenter) render(s model.Snapshot) {
	p.view.SetControls(ControlState{
		Models:            s.Catalog,
		Selected:          s.ModelKey,
		Threshold:         s.Threshold,
		ThresholdVisible:  s.ThresholdVisible(),
		ThresholdEditable: s.Lifecycle != model.Running,
		RunEnabled:        s.ModelKey != "" && s.Lifecycle != model.Running,
		Running:           s.Lifecycle == model.Running,
		ToggleEnabled:     s.Lifecycle == model.Succeeded && s.View.Kind.Spatial(),
		OverlayVisible:    s.OverlayVisible,
		ExportEnabled:     s.Lifecycle == model.Succeeded && s.View.Frame != nil,
	})
	p.view.SetMessage(Message(s))

	var prims []render.Primitive
	if s.HasResult && s.View.Frame != nil {
		prims = render.BuildOverlay(s.View, s.Hover, s.OverlayVisible)
	}
	prev := p.overlay
	p.overlay = nil
	if len(prims) == 0 {
		p.view.SetOverlay(p.canvas)
	} else {
		tr := render.Fit(*s.View.Frame, p.width, p.height)
		p.overlay = images.Composite(p.canvas, prims, tr)
		p.view.SetOverlay(p.overlay)
	}
	images.RecycleCanvas(prev)

	p.view.SetEntries(Entries(s))

	if s.HasResult && s.View.Kind == inference.KindClassification && !s.View.Empty() {
		p.view.SetBars(images.RenderBars(render.BuildBars(s.View), p.width, p.bars))
	} else {
		p.view.SetBars(nil)
	}
}

// Message returns the inline message for a snapshot.
func Message(s model.Snapshot) (string, MessageKind) {
	switch s.Lifecycle {
	case model.Running:
		return "Running " + s.ModelKey + "…", MessageInfo
	case model.Failed:
		return s.ErrMessage, MessageError
	case model.Succeeded:
		if s.View.Empty() {
			return render.EmptyMessage(s.View.Kind), MessageEmpty
		}
		return "", MessageNone
	}
	if s.ModelKey == "" {
		return "Select a model.", MessageInfo
	}
	return "Press Run to analyze.", MessageInfo
}

// Entries lists the spatial items of a snapshot with their hover emphasis.
// Classification results are shown as bars instead.
func Entries(s model.Snapshot) []ListEntry {
	if !s.HasResult || !s.View.Kind.Spatial() {
		return nil
	}
	out := make([]ListEntry, 0, s.View.Len())
	for _, it := range s.View.Items {
		text := render.LabelText(it.Label, it.Score)
		if !it.IsThing {
			text += " (stuff)"
		}
		out = append(out, ListEntry{
			Ordinal: it.Ordinal,
			Text:    text,
			Color:   render.HexOf(it.Ordinal),
			Hovered: s.Hover.Is(it.Ordinal),
		})
	}
	return out
}
