package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/debug"
	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/ui/images"
	"github.com/soocke/vision-panel-go/ui/model"
	"github.com/soocke/vision-panel-go/ui/theme"
	"github.com/soocke/vision-panel-go/ui/view"
)

const (
	tick = 50 * time.Millisecond
)

type loadedImage struct {
	img image.Image
	err error
}

// app is the Tk shell around one result panel.
type app struct {
	title   string
	width   int
	height  int
	image   string
	afterID string

	c      *AppContainer
	ctx    context.Context
	cancel context.CancelFunc

	baseCh chan loadedImage
}

// NewApp configures the main window for subject. Without a display image the
// overlay is drawn on a blank canvas.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger, subject model.Subject) *app {
	c := BuildContainer(cfg, cfgPath, logger, subject)
	ctx, cancel := context.WithCancel(context.Background())
	a := &app{
		title:  title,
		width:  c.Subject.Subject().DisplayWidth,
		height: c.Subject.Subject().DisplayHeight,
		image:  subject.DisplayImage,
		c:      c,
		ctx:    ctx,
		cancel: cancel,
		baseCh: make(chan loadedImage, 1),
	}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.width+420, a.height+220))
	return a
}

// Start builds the UI, kicks off background loading and runs the Tk loop.
func (a *app) Start() {
	c := a.c
	theme.SetDark(c.Config.DarkMode)
	c.Results.SetStyle(theme.BarStyle(), theme.OverlayBackground())

	c.RootView.Build(subjectTitle(c.Subject.Subject()), a.width, a.height, view.Handlers{
		Controls: view.ControlHandlers{
			OnSelectModel: c.Control.SelectModel,
			OnThreshold:   c.Control.SetThreshold,
			OnRun:         c.Control.RunDetection,
			OnToggle:      c.Control.ToggleOverlay,
			OnExport:      func() { _, _ = c.Control.ExportSVG("") },
		},
		Personas: view.PersonaHandlers{
			OnRefresh: c.PersonaPresent.Refresh,
			OnSave:    c.PersonaPresent.SaveForm,
			OnDelete:  c.PersonaPresent.Delete,
		},
		OnEntryEnter:   c.Hover.SetHover,
		OnEntryLeave:   c.Hover.ClearHover,
		OnPointer:      c.Hover.PointerAt,
		OnPointerLeave: c.Hover.PointerLeft,
		OnToastDismiss: c.Toasts.Dismiss,
		OnToggleDark:   a.toggleDark,
		OnExit:         a.exitHandler,
	})

	if c.Config.Debug {
		debug.StartGoroutineLogger(a.ctx, 5*time.Second, c.Logger)
		debug.StartMemLogger(a.ctx, 5*time.Second, c.Logger)
	}

	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, 20*time.Second)
		defer cancel()
		c.Control.LoadCatalog(ctx)
	}()
	if a.image != "" {
		go a.loadImage()
	}

	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) update() {
	select {
	case res := <-a.baseCh:
		if res.err != nil {
			a.c.Logger.Error("load display image", "src", a.image, "error", res.err)
			a.c.Notes.Push(notify.LevelError, "Could not load the image: "+res.err.Error())
		} else {
			a.c.Results.SetBaseImage(res.img)
		}
	default:
	}
	// Loop.Tick reschedules through Schedule.
	a.c.Loop.Tick()
}

func (a *app) loadImage() {
	ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
	defer cancel()
	img, err := images.Load(ctx, a.image)
	a.baseCh <- loadedImage{img: img, err: err}
}

func (a *app) toggleDark() {
	dark := theme.ToggleDark()
	a.c.Config.DarkMode = dark
	if err := a.c.Config.Save(a.c.CfgPath); err != nil {
		a.c.Logger.Warn("save config", "error", err)
	}
	a.c.Results.SetStyle(theme.BarStyle(), theme.OverlayBackground())
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.cancel()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

func subjectTitle(s model.Subject) string {
	if s.Kind == inference.SubjectVideoFrame && s.FrameIndex != nil {
		return fmt.Sprintf("Subject %s · frame %d", shortID(s.ID), *s.FrameIndex)
	}
	return "Subject " + shortID(s.ID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
