package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// RunStats shows the current request duration and the session total.
type RunStats interface {
	SetRun(d time.Duration)
	SetTotal(d time.Duration)
}

type runStats struct {
	runLbl   *LabelWidget
	totalLbl *LabelWidget
}

// NewRunStats creates the run and total labels at (row, startCol) and
// (row, startCol+1) of parent.
func NewRunStats(parent *FrameWidget, row, startCol int) RunStats {
	s := &runStats{runLbl: Label(Width(14)), totalLbl: Label(Width(16))}
	Grid(s.runLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.runLbl.Configure(Txt("Run: 0.0s"))
	s.totalLbl.Configure(Txt("Total: 0.0s"))
	return s
}

func (s *runStats) SetRun(d time.Duration) {
	if s == nil || s.runLbl == nil {
		return
	}
	s.runLbl.Configure(Txt(fmt.Sprintf("Run: %.1fs", d.Seconds())))
}

func (s *runStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt(fmt.Sprintf("Total: %.1fs", d.Seconds())))
}
