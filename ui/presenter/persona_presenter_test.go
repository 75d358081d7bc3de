package presenter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/vision-panel-go/domain/errs"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/domain/persona"
)

type memPersonas struct {
	mu    sync.Mutex
	items map[string]persona.Persona
	calls int
	fail  error
}

func (m *memPersonas) List(context.Context) ([]persona.Persona, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := make([]persona.Persona, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPersonas) Create(_ context.Context, p persona.Persona) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.items[p.Name]; ok {
		return &errs.RequestError{Op: "create persona", Status: 409, Message: "persona already exists"}
	}
	m.items[p.Name] = p
	return nil
}

func (m *memPersonas) Update(_ context.Context, name string, v persona.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.items[name] = persona.Persona{Name: name, InitialPrompt: v.InitialPrompt, FinalPrompt: v.FinalPrompt, LLMParams: v.LLMParams}
	return nil
}

func (m *memPersonas) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	delete(m.items, name)
	return nil
}

type recordingPersonas struct{ list []persona.Persona }

func (r *recordingPersonas) SetPersonas(list []persona.Persona) { r.list = list }

func newPersonaFixture() (*memPersonas, *notify.Store, *recordingPersonas, *PersonaPresenter) {
	store := &memPersonas{items: map[string]persona.Persona{}}
	notes := notify.NewStore(time.Minute)
	view := &recordingPersonas{}
	return store, notes, view, NewPersonaPresenter(store, notes, view, nil)
}

func TestPersonaPresenter_CreateRefreshes(t *testing.T) {
	_, notes, view, p := newPersonaFixture()
	p.Save(persona.Persona{Name: "critic", InitialPrompt: "Describe"}, true)
	p.Wait()
	p.Tick()

	require.Len(t, view.list, 1)
	assert.Equal(t, "critic", view.list[0].Name)
	toast, ok := notes.Latest(time.Now())
	require.True(t, ok)
	assert.Equal(t, notify.LevelSuccess, toast.Level)
	assert.Equal(t, "Persona 'critic' created", toast.Message)
}

func TestPersonaPresenter_BlankNameNeverCalls(t *testing.T) {
	store, notes, _, p := newPersonaFixture()
	p.Save(persona.Persona{Name: "  "}, true)
	p.Delete("")
	p.Wait()

	assert.Zero(t, store.calls)
	toast, ok := notes.Latest(time.Now())
	require.True(t, ok)
	assert.Equal(t, notify.LevelError, toast.Level)
	assert.Equal(t, "persona_name: must not be empty", toast.Message)
}

func TestPersonaPresenter_ConflictReported(t *testing.T) {
	store, notes, view, p := newPersonaFixture()
	store.items["critic"] = persona.Persona{Name: "critic"}
	p.Save(persona.Persona{Name: "critic"}, true)
	p.Wait()
	p.Tick()

	toast, ok := notes.Latest(time.Now())
	require.True(t, ok)
	assert.Equal(t, notify.LevelError, toast.Level)
	assert.Equal(t, "persona already exists", toast.Message)
	assert.Nil(t, view.list, "a failed mutation does not refresh")
}

func TestPersonaPresenter_UpdateAndDelete(t *testing.T) {
	store, notes, view, p := newPersonaFixture()
	store.items["critic"] = persona.Persona{Name: "critic"}
	p.Save(persona.Persona{Name: "critic", FinalPrompt: "Summarize"}, false)
	p.Wait()
	assert.Equal(t, "Summarize", store.items["critic"].FinalPrompt)

	p.Delete("critic")
	p.Wait()
	p.Tick()
	assert.Empty(t, view.list)
	toast, _ := notes.Latest(time.Now())
	assert.Equal(t, "Persona 'critic' deleted", toast.Message)
}

func TestPersonaPresenter_StoreFailure(t *testing.T) {
	store, notes, _, p := newPersonaFixture()
	store.fail = errors.New("connection refused")
	p.Save(persona.Persona{Name: "critic"}, true)
	p.Wait()
	toast, ok := notes.Latest(time.Now())
	require.True(t, ok)
	assert.Equal(t, "connection refused", toast.Message)
}

func TestPersonaPresenter_SaveFormRejectsBadParams(t *testing.T) {
	store, notes, _, p := newPersonaFixture()
	p.SaveForm("critic", "", "", "[1]", true)
	p.Wait()
	assert.Zero(t, store.calls)
	toast, ok := notes.Latest(time.Now())
	require.True(t, ok)
	assert.Equal(t, "llm_params: must be a JSON object", toast.Message)

	p.SaveForm(" critic ", "a", "b", `{"temperature":0.1}`, true)
	p.Wait()
	assert.Equal(t, 0.1, store.items["critic"].LLMParams["temperature"])
}
