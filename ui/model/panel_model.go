package model

import (
	"math"
	"sync"

	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/ui/render"
)

// Lifecycle is the state of the panel's inference request.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Running
	Succeeded
	Failed
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is an immutable copy of the panel state for rendering.
type Snapshot struct {
	Lifecycle      Lifecycle
	View           render.View
	HasResult      bool
	ErrMessage     string
	ModelKey       string
	ModelType      inference.ModelType
	Threshold      float64
	Catalog        []inference.ModelDescriptor
	OverlayVisible bool
	Hover          render.Hover
	Seq            uint64
	Revision       uint64
}

// ThresholdVisible reports whether the threshold control applies to the
// selected model. The value is kept either way.
func (s Snapshot) ThresholdVisible() bool { return s.ModelType.SupportsThreshold() }

// PanelModel is the single source of truth of one panel: request lifecycle,
// displayed result, hover slot and model selection. One mutex guards all of
// it so a new result and the hover reset land in the same update.
type PanelModel struct {
	mu sync.Mutex

	lifecycle  Lifecycle
	view       render.View
	hasResult  bool
	errMessage string

	modelKey  string
	modelType inference.ModelType
	threshold float64
	catalog   []inference.ModelDescriptor

	overlayVisible bool
	hover          render.Hover

	seq      uint64 // latest issued request; bumped on submit and on model switch
	revision uint64 // bumped on every visible change
}

// NewPanelModel returns an Idle model with the given threshold and overlay
// preference.
func NewPanelModel(threshold float64, overlayVisible bool) *PanelModel {
	return &PanelModel{threshold: clampUnit(threshold), overlayVisible: overlayVisible}
}

// Snapshot copies the current state.
func (m *PanelModel) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Lifecycle:      m.lifecycle,
		View:           m.view,
		HasResult:      m.hasResult,
		ErrMessage:     m.errMessage,
		ModelKey:       m.modelKey,
		ModelType:      m.modelType,
		Threshold:      m.threshold,
		Catalog:        append([]inference.ModelDescriptor(nil), m.catalog...),
		OverlayVisible: m.overlayVisible,
		Hover:          m.hover,
		Seq:            m.seq,
		Revision:       m.revision,
	}
}

// Revision changes whenever the snapshot would.
func (m *PanelModel) Revision() uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revision
}

// Lifecycle returns the current request state.
func (m *PanelModel) Lifecycle() Lifecycle {
	if m == nil {
		return Idle
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lifecycle
}

// SetCatalog replaces the model catalog.
func (m *PanelModel) SetCatalog(models []inference.ModelDescriptor) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = append([]inference.ModelDescriptor(nil), models...)
	m.revision++
}

// Descriptor looks up key in the catalog.
func (m *PanelModel) Descriptor(key string) (inference.ModelDescriptor, bool) {
	if m == nil {
		return inference.ModelDescriptor{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.catalog {
		if d.Key == key {
			return d, true
		}
	}
	return inference.ModelDescriptor{}, false
}

// SelectModel switches to d. Any displayed result is cleared, the lifecycle
// returns to Idle and an in-flight request is invalidated. Threshold and
// catalog are kept. Selecting the current model is a no-op.
func (m *PanelModel) SelectModel(d inference.ModelDescriptor) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.Key == m.modelKey {
		return false
	}
	m.modelKey, m.modelType = d.Key, d.Type
	m.lifecycle = Idle
	m.clearResultLocked()
	m.errMessage = ""
	m.seq++
	m.revision++
	return true
}

// SetThreshold clamps v to [0,1]. It is ignored while Running or for NaN.
func (m *PanelModel) SetThreshold(v float64) bool {
	if m == nil || math.IsNaN(v) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lifecycle == Running {
		return false
	}
	v = clampUnit(v)
	if v == m.threshold {
		return false
	}
	m.threshold = v
	m.revision++
	return true
}

// BeginRun moves to Running and returns the request's sequence number. It
// fails while a request is already Running.
func (m *PanelModel) BeginRun() (uint64, bool) {
	if m == nil {
		return 0, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lifecycle == Running {
		return 0, false
	}
	m.lifecycle = Running
	m.errMessage = ""
	m.seq++
	m.revision++
	return m.seq, true
}

// RejectRun records a request that failed before it was sent.
func (m *PanelModel) RejectRun(msg string) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lifecycle == Running {
		return false
	}
	m.lifecycle = Failed
	m.errMessage = msg
	m.clearResultLocked()
	m.revision++
	return true
}

// Succeed applies the result of request seq. The view replaces the old one,
// hover resets and the overlay is forced visible in the same update. Stale
// completions return false and change nothing.
func (m *PanelModel) Succeed(seq uint64, v render.View) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.currentLocked(seq) {
		return false
	}
	m.lifecycle = Succeeded
	m.view = v
	m.hasResult = true
	m.hover = render.NoHover()
	m.overlayVisible = true
	m.errMessage = ""
	m.revision++
	return true
}

// Fail settles request seq as Failed and clears any displayed result.
func (m *PanelModel) Fail(seq uint64, msg string) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.currentLocked(seq) {
		return false
	}
	m.lifecycle = Failed
	m.errMessage = msg
	m.clearResultLocked()
	m.revision++
	return true
}

// ToggleOverlay flips overlay visibility. Only meaningful in Succeeded.
func (m *PanelModel) ToggleOverlay() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lifecycle != Succeeded {
		return false
	}
	m.overlayVisible = !m.overlayVisible
	m.revision++
	return true
}

// SetHover stores ordinal as the hovered item. Out of range ordinals and
// panels without a result are ignored.
func (m *PanelModel) SetHover(ordinal int) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasResult || !m.view.InRange(ordinal) || m.hover.Is(ordinal) {
		return false
	}
	m.hover = render.HoverAt(ordinal)
	m.revision++
	return true
}

// ClearHover empties the hover slot.
func (m *PanelModel) ClearHover() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hover.Active {
		return false
	}
	m.hover = render.NoHover()
	m.revision++
	return true
}

func (m *PanelModel) currentLocked(seq uint64) bool {
	return m.lifecycle == Running && seq == m.seq
}

func (m *PanelModel) clearResultLocked() {
	m.view = render.View{}
	m.hasResult = false
	m.hover = render.NoHover()
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
