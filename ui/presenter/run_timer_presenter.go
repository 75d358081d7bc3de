package presenter

import (
	"time"

	"github.com/soocke/vision-panel-go/ui/model"
)

// LifecycleSource reports the request lifecycle.
type LifecycleSource interface{ Lifecycle() model.Lifecycle }

// RunTimerView displays the current run and total inference durations.
type RunTimerView interface {
	SetRunTime(run, total time.Duration)
}

// RunTimerPresenter formats run durations from the model to the view.
type RunTimerPresenter struct {
	timer *model.RunTimerModel
	panel LifecycleSource
	view  RunTimerView
}

// NewRunTimerPresenter returns a new RunTimerPresenter.
func NewRunTimerPresenter(timer *model.RunTimerModel, panel LifecycleSource, view RunTimerView) *RunTimerPresenter {
	return &RunTimerPresenter{timer: timer, panel: panel, view: view}
}

// Tick advances the timer from the lifecycle and pushes values to the view.
func (p *RunTimerPresenter) Tick(now time.Time) {
	if p == nil || p.timer == nil || p.panel == nil || p.view == nil {
		return
	}
	p.timer.OnTick(p.panel.Lifecycle() == model.Running, now)
	r, t := p.timer.Values()
	p.view.SetRunTime(r, t)
}
