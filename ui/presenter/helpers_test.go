package presenter

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/vision-panel-go/config"
	"github.com/soocke/vision-panel-go/domain/inference"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/ui/model"
)

const subjectID = "3f1c5a7e-8d2b-4c6f-9a0e-1b2c3d4e5f60"

var (
	detrModel = inference.ModelDescriptor{Key: "detr-resnet-50", Label: "DETR", Type: inference.ModelDetection}
	segModel  = inference.ModelDescriptor{Key: "mask2former", Label: "Mask2Former", Type: inference.ModelSegmentation}
	vitModel  = inference.ModelDescriptor{Key: "vit-base", Label: "ViT", Type: inference.ModelClassification}
)

// fakeRunner answers every request with the configured result or error. When
// gate is set each call blocks until a value is sent on it.
type fakeRunner struct {
	mu    sync.Mutex
	res   inference.Result
	err   error
	gate  chan struct{}
	calls atomic.Int32
	reqs  []inference.Request
}

func (f *fakeRunner) Run(ctx context.Context, req inference.Request) (inference.Result, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return inference.Result{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.res, f.err
}

func (f *fakeRunner) set(res inference.Result, err error) {
	f.mu.Lock()
	f.res, f.err = res, err
	f.mu.Unlock()
}

type fakeCatalog struct {
	models []inference.ModelDescriptor
	err    error
	seeded []inference.ModelDescriptor
}

func (c *fakeCatalog) Models(context.Context) ([]inference.ModelDescriptor, error) {
	return c.models, c.err
}
func (c *fakeCatalog) Seed(m []inference.ModelDescriptor) { c.seeded = m }

type fixture struct {
	panel   *model.PanelModel
	runner  *fakeRunner
	catalog *fakeCatalog
	notes   *notify.Store
	cfg     *config.Config
	ctrl    *ControlPresenter
	saves   int
}

func newFixture(t *testing.T, models ...inference.ModelDescriptor) *fixture {
	t.Helper()
	f := &fixture{
		panel:   model.NewPanelModel(0.5, true),
		runner:  &fakeRunner{},
		catalog: &fakeCatalog{models: models},
		notes:   notify.NewStore(time.Minute),
		cfg:     config.DefaultConfig(),
	}
	subject := model.NewSubjectModel(model.Subject{ID: subjectID, Kind: inference.SubjectImage, DisplayWidth: 640, DisplayHeight: 480})
	f.ctrl = NewControlPresenter(f.panel, subject, f.runner, f.catalog, f.notes, f.cfg, nil)
	f.ctrl.Save = func(*config.Config) error { f.saves++; return nil }
	f.ctrl.LoadCatalog(context.Background())
	return f
}

// waitForState polls ProcessResults until the lifecycle reaches want.
func waitForState(t *testing.T, f *fixture, want model.Lifecycle) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.ctrl.ProcessResults()
		if f.panel.Lifecycle() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %v, have %v", want, f.panel.Lifecycle())
}

func catDog() inference.Result {
	return inference.Result{
		Kind:       inference.KindDetection,
		ImageWidth: 640, ImageHeight: 480,
		Detections: []inference.DetectionItem{
			{Box: inference.Box{X1: 40, Y1: 60, X2: 240, Y2: 300}, Label: "cat", Score: 0.91},
			{Box: inference.Box{X1: 320, Y1: 100, X2: 600, Y2: 420}, Label: "dog", Score: 0.52},
		},
	}
}

var errNetwork = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

type recordingView struct {
	controls ControlState
	message  string
	kind     MessageKind
	overlay  image.Image
	entries  []ListEntry
	bars     image.Image
	renders  int
}

func (v *recordingView) SetControls(c ControlState) { v.controls = c; v.renders++ }
func (v *recordingView) SetMessage(text string, kind MessageKind) {
	v.message, v.kind = text, kind
}
func (v *recordingView) SetOverlay(img image.Image)     { v.overlay = img }
func (v *recordingView) SetEntries(entries []ListEntry) { v.entries = entries }
func (v *recordingView) SetBars(img image.Image)        { v.bars = img }
