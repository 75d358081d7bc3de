package view

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/soocke/vision-panel-go/ui/presenter"
	"github.com/soocke/vision-panel-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ControlHandlers are invoked on user actions in the control bar.
type ControlHandlers struct {
	OnSelectModel func(key string)
	OnThreshold   func(v float64)
	OnRun         func()
	OnToggle      func()
	OnExport      func()
}

// ControlBar holds the model selector, threshold editor and action buttons.
type ControlBar interface {
	Apply(s presenter.ControlState)
}

type controlBar struct {
	logger *slog.Logger
	h      ControlHandlers

	bar          *FrameWidget
	models       *TComboboxWidget
	thresholdBox *FrameWidget
	threshold    *TextWidget
	setBtn       *ButtonWidget
	runBtn       *TButtonWidget
	toggleBtn    *ButtonWidget
	exportBtn    *ButtonWidget

	keys             []string
	thresholdShown   bool
	thresholdCurrent float64
}

// NewControlBar builds the bar into parent at row.
func NewControlBar(parent *FrameWidget, row int, h ControlHandlers, logger *slog.Logger) ControlBar {
	c := &controlBar{logger: logger, h: h, thresholdShown: true}
	bar := Frame()
	c.bar = bar
	Grid(bar, In(parent), Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	Grid(Label(Txt("Model")), In(bar), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	c.models = TCombobox(Values([]string{"<none>"}), Width(28), State("readonly"))
	Grid(c.models, In(bar), Row(0), Column(1), Sticky("we"), Padx("0.2m"))
	Bind(c.models, "<<ComboboxSelected>>", Command(c.modelChanged))

	c.thresholdBox = Frame()
	Grid(c.thresholdBox, In(bar), Row(0), Column(2), Sticky("w"), Padx("0.4m"))
	Grid(Label(Txt("Threshold")), In(c.thresholdBox), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	c.threshold = Text(Height(1), Width(6))
	Grid(c.threshold, In(c.thresholdBox), Row(0), Column(1), Sticky("w"), Padx("0.2m"))
	c.setBtn = Button(Txt("Set"), Command(c.thresholdChanged))
	Grid(c.setBtn, In(c.thresholdBox), Row(0), Column(2), Sticky("w"), Padx("0.2m"))

	c.runBtn = TButton(Txt("Run"), Style(theme.StylePrimaryButton), Command(func() { call(c.h.OnRun) }))
	Grid(c.runBtn, In(bar), Row(0), Column(3), Sticky("we"), Padx("0.2m"))
	c.toggleBtn = Button(Txt("Hide overlay"), Command(func() { call(c.h.OnToggle) }))
	Grid(c.toggleBtn, In(bar), Row(0), Column(4), Sticky("we"), Padx("0.2m"))
	c.exportBtn = Button(Txt("Export SVG"), Command(func() { call(c.h.OnExport) }))
	Grid(c.exportBtn, In(bar), Row(0), Column(5), Sticky("we"), Padx("0.2m"))
	return c
}

func (c *controlBar) Apply(s presenter.ControlState) {
	if c == nil {
		return
	}
	keys := make([]string, 0, len(s.Models))
	for _, m := range s.Models {
		keys = append(keys, m.Key)
	}
	if len(keys) > 0 && !slices.Equal(keys, c.keys) {
		c.keys = keys
		c.models.Configure(Values(keys))
	}
	if i := slices.Index(c.keys, s.Selected); i >= 0 {
		c.models.Current(i)
	}
	if s.Threshold != c.thresholdCurrent || c.text() == "" {
		c.thresholdCurrent = s.Threshold
		c.threshold.Delete("1.0", END)
		c.threshold.Insert("1.0", fmt.Sprintf("%.2f", s.Threshold))
	}
	c.showThreshold(s.ThresholdVisible)

	c.models.Configure(State(pick(s.Running, "disabled", "readonly")))
	c.threshold.Configure(State(enabled(s.ThresholdEditable)))
	c.setBtn.Configure(State(enabled(s.ThresholdEditable)))
	c.runBtn.Configure(State(enabled(s.RunEnabled)), Txt(pick(s.Running, "Running…", "Run")))
	c.toggleBtn.Configure(State(enabled(s.ToggleEnabled)), Txt(pick(s.OverlayVisible, "Hide overlay", "Show overlay")))
	c.exportBtn.Configure(State(enabled(s.ExportEnabled)))
}

func (c *controlBar) showThreshold(show bool) {
	if show == c.thresholdShown {
		return
	}
	c.thresholdShown = show
	if show {
		Grid(c.thresholdBox, In(c.bar), Row(0), Column(2), Sticky("w"), Padx("0.4m"))
		return
	}
	GridForget(c.thresholdBox.Window)
}

func (c *controlBar) modelChanged() {
	idx, err := strconv.Atoi(c.models.Current(nil))
	if err != nil || idx < 0 || idx >= len(c.keys) {
		if c.logger != nil {
			c.logger.Error("model selection parse error", "error", err)
		}
		return
	}
	if c.h.OnSelectModel != nil {
		c.h.OnSelectModel(c.keys[idx])
	}
}

func (c *controlBar) thresholdChanged() {
	v, err := strconv.ParseFloat(c.text(), 64)
	if err != nil {
		// restore the last accepted value
		c.threshold.Delete("1.0", END)
		c.threshold.Insert("1.0", fmt.Sprintf("%.2f", c.thresholdCurrent))
		return
	}
	if c.h.OnThreshold != nil {
		c.h.OnThreshold(v)
	}
}

func (c *controlBar) text() string {
	return strings.TrimSpace(strings.Join(c.threshold.Get("1.0", END), ""))
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func enabled(b bool) string { return pick(b, "normal", "disabled") }

func pick(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
