package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/domain/persona"
	"github.com/soocke/vision-panel-go/ui/presenter"
	"github.com/soocke/vision-panel-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards to presenters.
type Handlers struct {
	Controls ControlHandlers
	Personas PersonaHandlers

	OnEntryEnter   func(ordinal int)
	OnEntryLeave   func()
	OnPointer      func(x, y int)
	OnPointerLeave func()
	OnToastDismiss func()
	OnToggleDark   func()
	OnExit         func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It implements the view contracts of the result, run timer, toast and
// persona presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Controls    ControlBar
	Overlay     OverlayView
	List        ResultList
	Bars        BarsView
	Stats       RunStats
	Toast       ToastBar
	Personas    PersonaWindow
	ConfigPanel ConfigPanel

	// Widgets
	MessageLabel *TLabelWidget
	lastMessage  string
	lastKind     presenter.MessageKind
}

var (
	_ presenter.ResultView   = (*RootView)(nil)
	_ presenter.RunTimerView = (*RootView)(nil)
	_ presenter.ToastView    = (*RootView)(nil)
	_ presenter.PersonaView  = (*RootView)(nil)
)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout for an overlay of width x height display pixels.
func (rv *RootView) Build(subjectTitle string, width, height int, h Handlers) {
	if rv == nil {
		return
	}
	body := Frame()
	Grid(body, Row(0), Column(0), Sticky("nsew"))
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 0, Weight(1))

	// Row 0: control bar
	rv.Controls = NewControlBar(body, 0, h.Controls, rv.logger)

	// Row 1: subject, run stats and window buttons
	status := Frame()
	Grid(status, In(body), Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	Grid(TLabel(Txt(subjectTitle), Style(theme.StyleAccentLabel)), In(status), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	rv.Stats = NewRunStats(status, 0, 1)
	Grid(Button(Txt("Personas…"), Command(func() {
		if rv.Personas != nil {
			rv.Personas.OpenOrFocus()
		}
	})), In(status), Row(0), Column(3), Sticky("e"), Padx("0.2m"))
	Grid(Button(Txt("Dark Mode"), Command(func() { call(h.OnToggleDark) })), In(status), Row(0), Column(4), Sticky("e"), Padx("0.2m"))
	Grid(TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(func() { call(h.OnExit) })), In(status), Row(0), Column(5), Sticky("e"), Padx("0.2m"))

	// Row 2: inline message
	rv.MessageLabel = TLabel(Txt(""), Anchor("w"), Style(theme.StyleMutedLabel))
	Grid(rv.MessageLabel, In(body), Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))

	// Row 3: overlay | list, bars and settings
	stage := Frame()
	Grid(stage, In(body), Row(3), Column(0), Sticky("nw"))
	rv.Overlay = NewOverlayView(stage, 0, width, height, h.OnPointer, h.OnPointerLeave)
	rv.Bars = NewBarsView(stage, 1, 0)

	side := Frame()
	Grid(side, In(body), Row(3), Column(1), Sticky("nsew"))
	rv.List = NewResultList(side, 0, 0, h.OnEntryEnter, h.OnEntryLeave)
	settings := Frame(Borderwidth(1), Relief("groove"))
	Grid(settings, In(side), Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.ConfigPanel.Build(settings, 0)

	// Row 4: toasts
	rv.Toast = NewToastBar(body, 4, h.OnToastDismiss)

	rv.Personas = NewPersonaWindow(h.Personas, rv.logger)
}

// --- ResultView ---

func (rv *RootView) SetControls(s presenter.ControlState) {
	if rv == nil {
		return
	}
	if rv.Controls != nil {
		rv.Controls.Apply(s)
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(!s.Running)
	}
}

func (rv *RootView) SetMessage(text string, kind presenter.MessageKind) {
	if rv == nil || rv.MessageLabel == nil || (text == rv.lastMessage && kind == rv.lastKind) {
		return
	}
	rv.lastMessage, rv.lastKind = text, kind
	style := theme.StyleMutedLabel
	if kind == presenter.MessageError {
		style = theme.StyleErrorLabel
	}
	rv.MessageLabel.Configure(Txt(text), Style(style))
}

func (rv *RootView) SetOverlay(img image.Image) {
	if rv != nil && rv.Overlay != nil {
		rv.Overlay.SetImage(img)
	}
}

func (rv *RootView) SetEntries(entries []presenter.ListEntry) {
	if rv != nil && rv.List != nil {
		rv.List.SetEntries(entries)
	}
}

func (rv *RootView) SetBars(img image.Image) {
	if rv != nil && rv.Bars != nil {
		rv.Bars.SetImage(img)
	}
}

// --- RunTimerView ---

func (rv *RootView) SetRunTime(run, total time.Duration) {
	if rv == nil || rv.Stats == nil {
		return
	}
	rv.Stats.SetRun(run)
	rv.Stats.SetTotal(total)
}

// --- ToastView ---

func (rv *RootView) ShowToast(text string, level notify.Level) {
	if rv != nil && rv.Toast != nil {
		rv.Toast.Show(text, level)
	}
}

func (rv *RootView) HideToast() {
	if rv != nil && rv.Toast != nil {
		rv.Toast.Hide()
	}
}

// --- PersonaView ---

func (rv *RootView) SetPersonas(list []persona.Persona) {
	if rv != nil && rv.Personas != nil {
		rv.Personas.SetPersonas(list)
	}
}
