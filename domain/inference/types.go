package inference

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/soocke/vision-panel-go/domain/errs"
)

// SubjectKind tells whether inference runs on a still image or a video frame.
type SubjectKind string

const (
	SubjectImage      SubjectKind = "image"
	SubjectVideoFrame SubjectKind = "video_frame"
)

// ModelType is the declared output kind of a model.
type ModelType string

const (
	ModelDetection      ModelType = "detection"
	ModelSegmentation   ModelType = "segmentation"
	ModelClassification ModelType = "classification"
)

// SupportsThreshold reports whether the threshold control applies to the type.
func (t ModelType) SupportsThreshold() bool {
	return t == ModelDetection || t == ModelSegmentation
}

// Known reports whether t is one of the declared model types.
func (t ModelType) Known() bool {
	switch t {
	case ModelDetection, ModelSegmentation, ModelClassification:
		return true
	}
	return false
}

// ModelDescriptor is one catalog entry.
type ModelDescriptor struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Type  ModelType `json:"type"`
}

// Request is an inference invocation. Build a fresh value per run.
type Request struct {
	SubjectID   string
	SubjectKind SubjectKind
	FrameIndex  *int
	ModelKey    string
	Threshold   float64
	TopK        int
}

// Validate returns a ValidationError for the first rule r breaks.
func (r Request) Validate() error {
	if strings.TrimSpace(r.SubjectID) == "" {
		return errs.Validation("subject_id", "is required")
	}
	if _, err := uuid.Parse(r.SubjectID); err != nil {
		return errs.Validation("subject_id", "must be a UUID")
	}
	switch r.SubjectKind {
	case SubjectImage:
		if r.FrameIndex != nil {
			return errs.Validation("frame_index", "only allowed for video frames")
		}
	case SubjectVideoFrame:
		if r.FrameIndex == nil {
			return errs.Validation("frame_index", "is required for video frames")
		}
		if *r.FrameIndex < 0 {
			return errs.Validation("frame_index", "must not be negative")
		}
	default:
		return errs.Validation("subject_kind", "unknown kind %q", string(r.SubjectKind))
	}
	if strings.TrimSpace(r.ModelKey) == "" {
		return errs.Validation("model_key", "is required")
	}
	if math.IsNaN(r.Threshold) || r.Threshold < 0 || r.Threshold > 1 {
		return errs.Validation("threshold", "must be within [0,1]")
	}
	if r.TopK < 1 {
		return errs.Validation("top_k", "must be at least 1")
	}
	return nil
}

// ResultKind tags the populated variant of a Result.
type ResultKind string

const (
	KindDetection      ResultKind = "detection"
	KindSegmentation   ResultKind = "segmentation"
	KindClassification ResultKind = "classification"
)

// Spatial reports whether results of the kind carry image coordinates.
func (k ResultKind) Spatial() bool {
	return k == KindDetection || k == KindSegmentation
}

// Box is an axis-aligned rectangle in image pixel units.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (b Box) Width() float64  { return b.X2 - b.X1 }
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Contains reports whether (x, y) lies inside b, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

type DetectionItem struct {
	Box   Box
	Label string
	Score float64
}

// SegmentItem approximates a segment by its bounding box. ID is unique within
// a result; IsThing separates countable objects from background regions.
type SegmentItem struct {
	ID      int
	Box     Box
	Label   string
	Score   float64
	IsThing bool
}

// ClassificationItem is a whole-image label; results are rank ordered.
type ClassificationItem struct {
	Label string
	Score float64
}

// Result is a tagged union: only the sequence matching Kind is populated and
// ImageWidth/ImageHeight are zero for classification.
type Result struct {
	Kind            ResultKind
	ImageWidth      int
	ImageHeight     int
	Detections      []DetectionItem
	Segments        []SegmentItem
	Classifications []ClassificationItem
}

// Len returns the number of items of the active kind.
func (r Result) Len() int {
	switch r.Kind {
	case KindDetection:
		return len(r.Detections)
	case KindSegmentation:
		return len(r.Segments)
	case KindClassification:
		return len(r.Classifications)
	}
	return 0
}
