package persona

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/soocke/vision-panel-go/domain/errs"
)

// Persona is a named prompt preset with model parameters.
type Persona struct {
	Name          string         `json:"persona_name"`
	InitialPrompt string         `json:"initial_prompt"`
	FinalPrompt   string         `json:"final_prompt"`
	LLMParams     map[string]any `json:"llm_params"`
	Timestamp     string         `json:"timestamp,omitempty"`
}

// Payload is the mutable part of a persona.
type Payload struct {
	InitialPrompt string         `json:"initial_prompt"`
	FinalPrompt   string         `json:"final_prompt"`
	LLMParams     map[string]any `json:"llm_params"`
}

// Payload returns p without its identity.
func (p Persona) Payload() Payload {
	return Payload{InitialPrompt: p.InitialPrompt, FinalPrompt: p.FinalPrompt, LLMParams: p.LLMParams}
}

// Store is the persona collaborator.
type Store interface {
	List(ctx context.Context) ([]Persona, error)
	Create(ctx context.Context, p Persona) error
	Update(ctx context.Context, name string, p Payload) error
	Delete(ctx context.Context, name string) error
}

// ValidateName rejects blank names before any request is made.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.Validation("persona_name", "must not be empty")
	}
	return nil
}

// ParseParams decodes the llm_params editor text. Blank text is an empty object.
func ParseParams(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil || m == nil {
		return nil, errs.Validation("llm_params", "must be a JSON object")
	}
	return m, nil
}

// FormatParams renders params for the editor.
func FormatParams(m map[string]any) string {
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
