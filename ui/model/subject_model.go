package model

import (
	"github.com/soocke/vision-panel-go/domain/inference"
)

// Subject is the image or video frame the panel runs inference on, plus how
// the host displays it.
type Subject struct {
	ID            string
	Kind          inference.SubjectKind
	FrameIndex    *int
	DisplayImage  string
	DisplayWidth  int
	DisplayHeight int
}

// SubjectModel holds the panel's subject. Set once by the host before the UI
// starts; no synchronization needed.
type SubjectModel struct {
	subject Subject
}

func NewSubjectModel(s Subject) *SubjectModel { return &SubjectModel{subject: s} }

// Subject returns the current subject.
func (m *SubjectModel) Subject() Subject {
	if m == nil {
		return Subject{}
	}
	return m.subject
}

// Request builds a fresh inference request for the subject. The frame index is
// copied so later edits to the subject never reach a submitted request.
func (m *SubjectModel) Request(modelKey string, threshold float64, topK int) inference.Request {
	s := m.Subject()
	req := inference.Request{
		SubjectID:   s.ID,
		SubjectKind: s.Kind,
		ModelKey:    modelKey,
		Threshold:   threshold,
		TopK:        topK,
	}
	if s.FrameIndex != nil {
		idx := *s.FrameIndex
		req.FrameIndex = &idx
	}
	return req
}
