package model

import (
	"time"
)

// RunTimerModel tracks how long the current inference has been running and
// the accumulated inference time of the session. Presenters poll Values() on
// the tick; the zero value is ready to use.
type RunTimerModel struct {
	active      bool
	runStart    time.Time
	lastRun     time.Duration
	accumulated time.Duration
	runs        int
}

// NewRunTimerModel returns a pointer to a ready-to-use RunTimerModel.
func NewRunTimerModel() *RunTimerModel { return &RunTimerModel{} }

// OnTick updates the timer from the lifecycle's running flag.
func (m *RunTimerModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	if running {
		if !m.active { // idle -> running
			m.active = true
			m.runStart = now
			m.lastRun = 0
			m.runs++
		}
		m.lastRun = now.Sub(m.runStart)
	} else if m.active { // running -> settled
		m.lastRun = now.Sub(m.runStart)
		m.accumulated += m.lastRun
		m.active = false
	}
}

// Values returns the current (or last) run duration and the total across runs.
// The total includes the ongoing run when active.
func (m *RunTimerModel) Values() (run, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	run = m.lastRun
	total = m.accumulated
	if m.active {
		total += run
	}
	return
}

// Runs returns how many runs have started.
func (m *RunTimerModel) Runs() int {
	if m == nil {
		return 0
	}
	return m.runs
}
