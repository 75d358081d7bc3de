package presenter

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/domain/errs"
	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/ui/model"
	"github.com/soocke/vision-panel-go/ui/render"
)

func TestControlPresenter_CatDogScenario(t *testing.T) {
	f := newFixture(t, detrModel)
	f.runner.set(catDog(), nil)

	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)

	s := f.panel.Snapshot()
	prims := render.BuildOverlay(s.View, s.Hover, s.OverlayVisible)
	if len(prims) != 2 {
		t.Fatalf("expected 2 primitives, got %d", len(prims))
	}
	if prims[0].Color != render.ColorOf(0) || prims[1].Color != render.ColorOf(1) {
		t.Fatalf("unexpected colors %v %v", prims[0].Color, prims[1].Color)
	}
	if prims[0].Chip.Text != "cat 91%" || prims[1].Chip.Text != "dog 52%" {
		t.Fatalf("unexpected chips %q %q", prims[0].Chip.Text, prims[1].Chip.Text)
	}
	req := f.runner.reqs[0]
	if req.ModelKey != "detr-resnet-50" || req.Threshold != 0.5 || req.TopK != 5 || req.SubjectID != subjectID {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestControlPresenter_EmptyDetections(t *testing.T) {
	f := newFixture(t, detrModel)
	f.runner.set(inference.Result{Kind: inference.KindDetection, ImageWidth: 640, ImageHeight: 480}, nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)

	s := f.panel.Snapshot()
	if n := len(render.BuildOverlay(s.View, s.Hover, s.OverlayVisible)); n != 0 {
		t.Fatalf("expected no primitives, got %d", n)
	}
	text, kind := Message(s)
	if kind != MessageEmpty || !strings.HasPrefix(text, "No objects detected") || !strings.Contains(text, "Try lowering the threshold.") {
		t.Fatalf("unexpected empty message %q (%v)", text, kind)
	}
}

func TestControlPresenter_DoubleRunMakesOneCall(t *testing.T) {
	f := newFixture(t, detrModel)
	f.runner.gate = make(chan struct{})
	f.runner.set(catDog(), nil)

	var seen []model.Lifecycle
	record := func() {
		l := f.panel.Lifecycle()
		if len(seen) == 0 || seen[len(seen)-1] != l {
			seen = append(seen, l)
		}
	}
	record()
	f.ctrl.RunDetection()
	record()
	f.ctrl.RunDetection()
	record()
	close(f.runner.gate)
	waitForState(t, f, model.Succeeded)
	record()

	if got := f.runner.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one call, got %d", got)
	}
	want := []model.Lifecycle{model.Idle, model.Running, model.Succeeded}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("unexpected transitions %v", seen)
		}
	}
}

func TestControlPresenter_NetworkErrorClearsResult(t *testing.T) {
	f := newFixture(t, detrModel)
	f.runner.set(catDog(), nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)

	f.runner.set(inference.Result{}, errNetwork)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Failed)

	s := f.panel.Snapshot()
	if s.ErrMessage != errNetwork.Error() {
		t.Fatalf("inline error should equal the error message, got %q", s.ErrMessage)
	}
	if s.HasResult || s.View.Len() != 0 {
		t.Fatalf("previous result should be cleared")
	}

	// recoverable by running again
	f.runner.set(catDog(), nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)
}

func TestControlPresenter_MalformedResultFails(t *testing.T) {
	f := newFixture(t, detrModel)
	f.runner.set(inference.Result{Kind: "depth"}, nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Failed)
	if msg := f.panel.Snapshot().ErrMessage; !strings.HasPrefix(msg, "malformed result") {
		t.Fatalf("expected malformed message, got %q", msg)
	}
}

func TestControlPresenter_SwitchToClassificationClearsResult(t *testing.T) {
	f := newFixture(t, detrModel, vitModel)
	f.runner.set(catDog(), nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)

	f.ctrl.SelectModel("vit-base")
	s := f.panel.Snapshot()
	if s.Lifecycle != model.Idle || s.HasResult {
		t.Fatalf("switching model should clear the result, got %+v", s)
	}
	if s.ThresholdVisible() {
		t.Fatalf("threshold control should be hidden for classification")
	}
	if s.Threshold != 0.5 || len(s.Catalog) != 2 {
		t.Fatalf("threshold and catalog are retained")
	}
	if f.runner.calls.Load() != 1 {
		t.Fatalf("selecting a model must not run inference")
	}
	if f.cfg.DefaultModel != "vit-base" || f.saves == 0 {
		t.Fatalf("selection should be written back to config")
	}
}

func TestControlPresenter_StaleCompletionDiscarded(t *testing.T) {
	f := newFixture(t, detrModel, segModel)
	f.runner.gate = make(chan struct{})
	f.runner.set(catDog(), nil)
	f.ctrl.RunDetection()

	f.ctrl.SelectModel("mask2former")
	// the in-flight request is canceled; let the worker finish it
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		f.ctrl.ProcessResults()
		time.Sleep(5 * time.Millisecond)
	}
	if s := f.panel.Snapshot(); s.Lifecycle != model.Idle || s.HasResult {
		t.Fatalf("stale completion must not be applied, got %v", s.Lifecycle)
	}
}

func TestControlPresenter_UnknownModel(t *testing.T) {
	f := newFixture(t, detrModel)
	before := f.panel.Snapshot()
	f.ctrl.SelectModel("nope")
	after := f.panel.Snapshot()
	if after.ModelKey != before.ModelKey || after.Revision != before.Revision {
		t.Fatalf("unknown model must not change state")
	}
	toast, ok := f.notes.Latest(time.Now())
	if !ok || !strings.Contains(toast.Message, "unknown model") {
		t.Fatalf("expected an error toast, got %+v", toast)
	}
}

func TestControlPresenter_InvalidRequestFailsWithoutCall(t *testing.T) {
	f := newFixture(t, detrModel)
	f.ctrl.Subject = model.NewSubjectModel(model.Subject{ID: "not-a-uuid", Kind: inference.SubjectImage})
	f.ctrl.RunDetection()
	s := f.panel.Snapshot()
	if s.Lifecycle != model.Failed || !strings.Contains(s.ErrMessage, "subject_id") {
		t.Fatalf("expected validation failure, got %v %q", s.Lifecycle, s.ErrMessage)
	}
	if f.runner.calls.Load() != 0 {
		t.Fatalf("no call expected for an invalid request")
	}
}

func TestControlPresenter_ThresholdIgnoredWhileRunning(t *testing.T) {
	f := newFixture(t, detrModel)
	f.ctrl.SetThreshold(0.7)
	if f.cfg.Threshold != 0.7 {
		t.Fatalf("threshold should be written back, got %v", f.cfg.Threshold)
	}
	f.runner.set(catDog(), nil)
	f.runner.gate = make(chan struct{})
	f.ctrl.RunDetection()
	f.ctrl.SetThreshold(0.2)
	if got := f.panel.Snapshot().Threshold; got != 0.7 {
		t.Fatalf("threshold change while Running should be ignored, got %v", got)
	}
	close(f.runner.gate)
	waitForState(t, f, model.Succeeded)
}

func TestControlPresenter_LoadCatalogFallback(t *testing.T) {
	f := newFixture(t)
	f.catalog.err = &errs.RequestError{Op: "list models", Message: "list models: request timed out"}
	f.cfg.DefaultModel = "vit-base"
	f.ctrl.Fallback = func() ([]inference.ModelDescriptor, error) {
		return []inference.ModelDescriptor{detrModel, vitModel}, nil
	}
	f.ctrl.LoadCatalog(context.Background())

	s := f.panel.Snapshot()
	if len(s.Catalog) != 2 || s.ModelKey != "vit-base" {
		t.Fatalf("expected fallback catalog with default model, got %+v", s)
	}
	if len(f.catalog.seeded) != 2 {
		t.Fatalf("fallback should seed the cache")
	}
	toast, ok := f.notes.Latest(time.Now())
	if !ok || toast.Level != notify.LevelError || !strings.Contains(toast.Message, "request timed out") {
		t.Fatalf("expected a catalog toast, got %+v", toast)
	}
}

func TestControlPresenter_ToggleOverlay(t *testing.T) {
	f := newFixture(t, detrModel)
	f.ctrl.ToggleOverlay()
	if !f.panel.Snapshot().OverlayVisible {
		t.Fatalf("toggle before success is a no-op")
	}
	f.runner.set(catDog(), nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)
	f.ctrl.ToggleOverlay()
	s := f.panel.Snapshot()
	if s.OverlayVisible || len(render.BuildOverlay(s.View, s.Hover, s.OverlayVisible)) != 0 {
		t.Fatalf("hidden overlay draws nothing")
	}
	f.ctrl.ToggleOverlay()
	if len(render.BuildOverlay(s.View, s.Hover, true)) != 2 {
		t.Fatalf("result must survive toggling")
	}
}

func TestControlPresenter_ExportSVG(t *testing.T) {
	f := newFixture(t, detrModel)
	if _, err := f.ctrl.ExportSVG(t.TempDir()); err == nil {
		t.Fatalf("export without a result should fail")
	}
	f.runner.set(catDog(), nil)
	f.ctrl.RunDetection()
	waitForState(t, f, model.Succeeded)

	path, err := f.ctrl.ExportSVG(t.TempDir())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Count(string(data), "data-ordinal=") != 2 || !strings.Contains(string(data), "cat 91%") {
		t.Fatalf("unexpected svg:\n%s", data)
	}
}

func TestControlPresenter_SaveErrorIsLoggedOnly(t *testing.T) {
	f := newFixture(t, detrModel, vitModel)
	f.ctrl.Save = func(*config.Config) error { return errors.New("read-only file system") }
	f.ctrl.SelectModel("vit-base")
	if f.panel.Snapshot().ModelKey != "vit-base" {
		t.Fatalf("a failed config write must not undo the selection")
	}
}
