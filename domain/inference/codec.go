package inference

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/soocke/vision-panel-go/domain/errs"
)

// wire shapes

type wireRequest struct {
	SubjectID   string      `json:"subject_id"`
	SubjectKind SubjectKind `json:"subject_kind"`
	FrameIndex  *int        `json:"frame_index,omitempty"`
	ModelKey    string      `json:"model_key"`
	Threshold   float64     `json:"threshold"`
	TopK        int         `json:"top_k"`
}

type wireItem struct {
	ID      *int    `json:"id,omitempty"`
	Box     *Box    `json:"box,omitempty"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
	IsThing *bool   `json:"is_thing,omitempty"`
}

type wireResult struct {
	Kind        ResultKind `json:"kind"`
	ImageWidth  int        `json:"image_width"`
	ImageHeight int        `json:"image_height"`
	Items       []wireItem `json:"items"`
}

// EncodeRequest marshals r into the inference API body.
func EncodeRequest(r Request) ([]byte, error) {
	return json.Marshal(wireRequest{
		SubjectID:   r.SubjectID,
		SubjectKind: r.SubjectKind,
		FrameIndex:  r.FrameIndex,
		ModelKey:    r.ModelKey,
		Threshold:   r.Threshold,
		TopK:        r.TopK,
	})
}

// DecodeResult parses an inference response. Anything that cannot be rendered
// faithfully (unknown kind, missing frame, inverted box, empty label, duplicate
// segment id) is reported as a MalformedResultError; it is never turned into an
// empty result.
func DecodeResult(data []byte) (Result, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return Result{}, errs.Malformed("invalid json: %v", err)
	}
	res := Result{Kind: w.Kind}
	switch w.Kind {
	case KindDetection, KindSegmentation:
		if w.ImageWidth <= 0 || w.ImageHeight <= 0 {
			return Result{}, errs.Malformed("%s result needs positive image size, got %dx%d", w.Kind, w.ImageWidth, w.ImageHeight)
		}
		res.ImageWidth, res.ImageHeight = w.ImageWidth, w.ImageHeight
	case KindClassification:
	case "":
		return Result{}, errs.Malformed("missing kind")
	default:
		return Result{}, errs.Malformed("unknown kind %q", string(w.Kind))
	}

	// explicit segment ids are reserved before any default is handed out
	explicit := make(map[int]struct{})
	if w.Kind == KindSegmentation {
		for _, it := range w.Items {
			if it.ID != nil {
				explicit[*it.ID] = struct{}{}
			}
		}
	}
	seen := make(map[int]struct{})
	for i, it := range w.Items {
		label := strings.TrimSpace(it.Label)
		if label == "" {
			return Result{}, errs.Malformed("item %d has empty label", i)
		}
		score := clampScore(it.Score)
		switch w.Kind {
		case KindClassification:
			res.Classifications = append(res.Classifications, ClassificationItem{Label: label, Score: score})
			continue
		}
		if it.Box == nil {
			return Result{}, errs.Malformed("item %d has no box", i)
		}
		b := *it.Box
		if b.X2 < b.X1 || b.Y2 < b.Y1 {
			return Result{}, errs.Malformed("item %d has inverted box %+v", i, b)
		}
		if w.Kind == KindDetection {
			res.Detections = append(res.Detections, DetectionItem{Box: b, Label: label, Score: score})
			continue
		}
		var id int
		if it.ID != nil {
			id = *it.ID
			if _, dup := seen[id]; dup {
				return Result{}, errs.Malformed("duplicate segment id %d", id)
			}
		} else {
			id = freeSegmentID(i, explicit, seen)
		}
		seen[id] = struct{}{}
		thing := true
		if it.IsThing != nil {
			thing = *it.IsThing
		}
		res.Segments = append(res.Segments, SegmentItem{ID: id, Box: b, Label: label, Score: score, IsThing: thing})
	}
	if w.Kind == KindClassification {
		// rank 0 must be the top score even if the producer did not sort
		sort.SliceStable(res.Classifications, func(i, j int) bool {
			return res.Classifications[i].Score > res.Classifications[j].Score
		})
	}
	return res, nil
}

// DecodeModels parses the catalog response, dropping entries with an empty
// key or unknown type.
func DecodeModels(data []byte) ([]ModelDescriptor, error) {
	var list []ModelDescriptor
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	out := list[:0]
	seen := make(map[string]struct{}, len(list))
	for _, m := range list {
		m.Key = strings.TrimSpace(m.Key)
		if m.Key == "" || !m.Type.Known() {
			continue
		}
		if _, dup := seen[m.Key]; dup {
			continue
		}
		seen[m.Key] = struct{}{}
		if m.Label == "" {
			m.Label = m.Key
		}
		out = append(out, m)
	}
	return out, nil
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// freeSegmentID returns the position when no explicit or already assigned id
// holds it, else the next integer above it that is free.
func freeSegmentID(pos int, explicit, seen map[int]struct{}) int {
	id := pos
	for {
		_, e := explicit[id]
		_, s := seen[id]
		if !e && !s {
			return id
		}
		id++
	}
}
