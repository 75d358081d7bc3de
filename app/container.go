package app

import (
	"log/slog"
	"time"

	"github.com/soocke/vision-panel-go/assets"
	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/domain/persona"
	"github.com/soocke/vision-panel-go/ui/model"
	"github.com/soocke/vision-panel-go/ui/presenter"
	"github.com/soocke/vision-panel-go/ui/theme"
	"github.com/soocke/vision-panel-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	CfgPath string
	Logger  *slog.Logger

	// Models
	Panel   *model.PanelModel
	Subject *model.SubjectModel
	Timer   *model.RunTimerModel

	// Services
	Inference *inference.HTTPClient
	Catalog   *inference.CatalogCache
	Personas  *persona.HTTPClient
	Notes     *notify.Store

	RootView *view.RootView

	// Presenters
	Control        *presenter.ControlPresenter
	Hover          *presenter.HoverCoordinator
	Results        *presenter.ResultPresenter
	TimerPresent   *presenter.RunTimerPresenter
	Toasts         *presenter.ToastPresenter
	PersonaPresent *presenter.PersonaPresenter
	Loop           *presenter.Loop
}

// BuildContainer constructs all components for one subject. It has no side
// effects beyond allocating; network and Tk work starts in App.Start.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, subject model.Subject) *AppContainer {
	if subject.DisplayWidth <= 0 {
		subject.DisplayWidth = cfg.DisplayWidth
	}
	if subject.DisplayHeight <= 0 {
		subject.DisplayHeight = cfg.DisplayHeight
	}
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}

	c.Panel = model.NewPanelModel(cfg.Threshold, cfg.OverlayVisible)
	c.Subject = model.NewSubjectModel(subject)
	c.Timer = model.NewRunTimerModel()

	c.Inference = inference.NewHTTPClient(cfg.InferenceURL, nil, logger)
	c.Catalog = inference.NewCatalogCache(c.Inference)
	c.Personas = persona.NewHTTPClient(cfg.PersonaURL, nil, logger)
	c.Notes = notify.NewStore(time.Duration(cfg.ToastSeconds) * time.Second)

	c.RootView = view.NewRootView(cfg, cfgPath, logger)

	c.Control = presenter.NewControlPresenter(c.Panel, c.Subject, c.Inference, c.Catalog, c.Notes, cfg, logger)
	c.Control.Fallback = assets.DefaultModels
	c.Control.Save = func(cfg *config.Config) error { return cfg.Save(cfgPath) }
	c.Hover = presenter.NewHoverCoordinator(c.Panel, subject.DisplayWidth, subject.DisplayHeight)
	c.Results = presenter.NewResultPresenter(c.Panel, c.RootView, subject.DisplayWidth, subject.DisplayHeight, theme.BarStyle(), theme.OverlayBackground())
	c.TimerPresent = presenter.NewRunTimerPresenter(c.Timer, c.Panel, c.RootView)
	c.Toasts = presenter.NewToastPresenter(c.Notes, c.RootView)
	c.PersonaPresent = presenter.NewPersonaPresenter(c.Personas, c.Notes, c.RootView, logger)
	// Schedule is set by the app once the Tk loop exists.
	c.Loop = presenter.NewLoop(c.Control, c.Results, c.TimerPresent, c.PersonaPresent, c.Toasts, nil)
	return c
}
