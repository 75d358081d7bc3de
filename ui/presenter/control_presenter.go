package presenter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/domain/errs"
	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/ui/model"
	"github.com/soocke/vision-panel-go/ui/render"
)

// InferenceRunner runs one inference request.
type InferenceRunner interface {
	Run(ctx context.Context, req inference.Request) (inference.Result, error)
}

// CatalogSource provides the model catalog.
type CatalogSource interface {
	Models(ctx context.Context) ([]inference.ModelDescriptor, error)
	Seed(models []inference.ModelDescriptor)
}

// Notifier posts transient messages.
type Notifier interface {
	Push(level notify.Level, message string) string
}

type inferenceTask struct {
	seq    uint64
	req    inference.Request
	ctx    context.Context
	cancel context.CancelFunc
}

type inferenceOutcome struct {
	seq      uint64
	model    string
	view     render.View
	err      error
	duration time.Duration
}

// ControlPresenter owns model selection, the threshold, the run trigger and
// the overlay toggle. Inference runs on a worker goroutine; its outcome is
// applied on the UI tick by ProcessResults. Failures become panel state and
// are never returned to the caller.
type ControlPresenter struct {
	Model    *model.PanelModel
	Subject  *model.SubjectModel
	Runner   InferenceRunner
	Catalog  CatalogSource
	Fallback func() ([]inference.ModelDescriptor, error)
	Notes    Notifier
	Config   *config.Config
	// Save persists Config after a user change; nil disables write back.
	Save   func(*config.Config) error
	logger *slog.Logger

	workerOnce sync.Once
	workCh     chan inferenceTask
	resultCh   chan inferenceOutcome

	mu       sync.Mutex
	inflight context.CancelFunc
}

// NewControlPresenter constructs a control presenter.
func NewControlPresenter(m *model.PanelModel, subject *model.SubjectModel, runner InferenceRunner, catalog CatalogSource, notes Notifier, cfg *config.Config, logger *slog.Logger) *ControlPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ControlPresenter{
		Model:    m,
		Subject:  subject,
		Runner:   runner,
		Catalog:  catalog,
		Notes:    notes,
		Config:   cfg,
		logger:   logger,
		workCh:   make(chan inferenceTask, 1),
		resultCh: make(chan inferenceOutcome, 1),
	}
}

// LoadCatalog fetches the model catalog, falling back to the built-in list
// when the service is unreachable, and selects the configured default model
// or the first one.
func (p *ControlPresenter) LoadCatalog(ctx context.Context) {
	if p == nil || p.Model == nil || p.Catalog == nil {
		return
	}
	models, err := p.Catalog.Models(ctx)
	if err != nil {
		p.log().Warn("model catalog unavailable", "error", err)
		if p.Fallback != nil {
			fb, ferr := p.Fallback()
			if ferr != nil {
				p.log().Error("built-in catalog", "error", ferr)
			} else {
				models = fb
				p.Catalog.Seed(fb)
			}
		}
		p.notify(notify.LevelError, "Could not load models: "+errs.Message(err)+". Using the built-in list.")
	}
	p.Model.SetCatalog(models)
	if len(models) == 0 {
		return
	}
	key := models[0].Key
	if want := p.Config.DefaultModel; want != "" {
		if _, ok := p.Model.Descriptor(want); ok {
			key = want
		}
	}
	p.selectModel(key, false)
}

// SelectModel switches the active model. An unknown key is reported and
// changes nothing.
func (p *ControlPresenter) SelectModel(key string) {
	if p == nil || p.Model == nil {
		return
	}
	p.selectModel(key, true)
}

func (p *ControlPresenter) selectModel(key string, persist bool) {
	d, ok := p.Model.Descriptor(key)
	if !ok {
		err := errs.Validation("model", "unknown model %q", key)
		p.log().Warn("select model", "error", err)
		p.notify(notify.LevelError, errs.Message(err))
		return
	}
	if !p.Model.SelectModel(d) {
		return
	}
	p.cancelInflight()
	p.log().Debug("model selected", "model", d.Key, "type", d.Type)
	if persist {
		p.Config.DefaultModel = d.Key
		p.persist()
	}
}

// SetThreshold clamps v to [0,1]; ignored while a request is Running.
func (p *ControlPresenter) SetThreshold(v float64) {
	if p == nil || p.Model == nil {
		return
	}
	if !p.Model.SetThreshold(v) {
		return
	}
	p.Config.Threshold = p.Model.Snapshot().Threshold
	p.persist()
}

// RunDetection submits a request for the selected model. A second call while
// Running is a no-op. Invalid requests fail without reaching the service.
func (p *ControlPresenter) RunDetection() {
	if p == nil || p.Model == nil || p.Runner == nil {
		return
	}
	snap := p.Model.Snapshot()
	if snap.Lifecycle == model.Running {
		return
	}
	req := p.Subject.Request(snap.ModelKey, snap.Threshold, p.Config.TopK)
	if err := req.Validate(); err != nil {
		p.log().Warn("inference request rejected", "error", err)
		p.Model.RejectRun(errs.Message(err))
		return
	}
	seq, ok := p.Model.BeginRun()
	if !ok {
		return
	}
	p.ensureWorker()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(p.Config.RequestTimeoutSeconds)*time.Second)
	p.mu.Lock()
	p.inflight = cancel
	p.mu.Unlock()
	p.log().Debug("inference submitted", "model", req.ModelKey, "seq", seq, "threshold", req.Threshold)
	p.dispatch(inferenceTask{seq: seq, req: req, ctx: ctx, cancel: cancel})
}

// ProcessResults applies finished requests. Call on the UI tick.
func (p *ControlPresenter) ProcessResults() {
	if p == nil || p.Model == nil || p.resultCh == nil {
		return
	}
	for {
		select {
		case out := <-p.resultCh:
			p.apply(out)
		default:
			return
		}
	}
}

// ToggleOverlay flips overlay visibility; only meaningful after a success.
func (p *ControlPresenter) ToggleOverlay() {
	if p == nil || p.Model == nil {
		return
	}
	p.Model.ToggleOverlay()
}

// ExportSVG writes the displayed overlay as an SVG document into dir (the
// configured export directory when empty) and returns the file path.
func (p *ControlPresenter) ExportSVG(dir string) (string, error) {
	if p == nil || p.Model == nil {
		return "", fmt.Errorf("export svg: no panel")
	}
	snap := p.Model.Snapshot()
	if snap.Lifecycle != model.Succeeded || snap.View.Frame == nil {
		err := errs.Validation("export", "nothing to export")
		p.notify(notify.LevelError, errs.Message(err))
		return "", err
	}
	if dir == "" {
		dir = p.Config.ExportDir
	}
	prims := render.BuildOverlay(snap.View, snap.Hover, true)
	var buf bytes.Buffer
	err := render.WriteSVG(&buf, *snap.View.Frame, prims, render.SVGOptions{
		Width:  p.Config.DisplayWidth,
		Height: p.Config.DisplayHeight,
		Title:  snap.ModelKey,
	})
	if err == nil {
		name := fmt.Sprintf("overlay-%s-%d.svg", snap.ModelKey, time.Now().Unix())
		path := filepath.Join(dir, name)
		if err = os.WriteFile(path, buf.Bytes(), 0o644); err == nil {
			p.log().Info("overlay exported", "path", path, "items", len(prims))
			p.notify(notify.LevelSuccess, "Overlay saved to "+path)
			return path, nil
		}
	}
	p.log().Error("export svg", "error", err)
	p.notify(notify.LevelError, "Export failed: "+err.Error())
	return "", err
}

func (p *ControlPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *ControlPresenter) runWorker() {
	for task := range p.workCh {
		out := p.execute(task)
		select {
		case p.resultCh <- out:
		default:
			// only the newest outcome can still be current
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- out:
			default:
			}
		}
	}
}

func (p *ControlPresenter) dispatch(task inferenceTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case old := <-p.workCh:
			old.cancel()
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *ControlPresenter) execute(task inferenceTask) inferenceOutcome {
	defer task.cancel()
	out := inferenceOutcome{seq: task.seq, model: task.req.ModelKey}
	start := time.Now()
	res, err := p.Runner.Run(task.ctx, task.req)
	out.duration = time.Since(start)
	if err != nil {
		out.err = err
		return out
	}
	out.view, out.err = render.Normalize(res)
	return out
}

func (p *ControlPresenter) apply(out inferenceOutcome) {
	if out.err != nil {
		if !p.Model.Fail(out.seq, errs.Message(out.err)) {
			p.log().Debug("stale inference discarded", "seq", out.seq, "model", out.model)
			return
		}
		p.log().Error("inference", "error", out.err, "model", out.model, "seq", out.seq, "duration", out.duration)
		return
	}
	if !p.Model.Succeed(out.seq, out.view) {
		p.log().Debug("stale inference discarded", "seq", out.seq, "model", out.model)
		return
	}
	p.log().Info("inference", "model", out.model, "seq", out.seq, "kind", out.view.Kind, "items", out.view.Len(), "duration", out.duration)
}

func (p *ControlPresenter) cancelInflight() {
	p.mu.Lock()
	cancel := p.inflight
	p.inflight = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (p *ControlPresenter) persist() {
	if p.Save == nil {
		return
	}
	if err := p.Save(p.Config); err != nil {
		p.log().Warn("save config", "error", err)
	}
}

func (p *ControlPresenter) notify(level notify.Level, msg string) {
	if p.Notes != nil {
		p.Notes.Push(level, msg)
	}
}

func (p *ControlPresenter) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}
