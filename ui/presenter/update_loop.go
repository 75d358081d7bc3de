package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessResults on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Control  *ControlPresenter
	Results  *ResultPresenter
	Timer    *RunTimerPresenter
	Personas *PersonaPresenter
	Toasts   *ToastPresenter
	Schedule func()
}

func NewLoop(control *ControlPresenter, results *ResultPresenter, timer *RunTimerPresenter, personas *PersonaPresenter, toasts *ToastPresenter, schedule func()) *Loop {
	return &Loop{Control: control, Results: results, Timer: timer, Personas: personas, Toasts: toasts, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Settle finished requests first so the render below sees them.
	if l.Control != nil {
		l.Control.ProcessResults()
	}
	if l.Timer != nil {
		l.Timer.Tick(now)
	}
	if l.Results != nil {
		l.Results.Tick()
	}
	if l.Personas != nil {
		l.Personas.Tick()
	}
	if l.Toasts != nil {
		l.Toasts.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
