package presenter

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/soocke/vision-panel-go/domain/errs"
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/domain/persona"
)

// PersonaView lists personas.
type PersonaView interface {
	SetPersonas(list []persona.Persona)
}

// PersonaPresenter runs persona mutations off the UI thread and reports each
// outcome as a toast. Validation failures are reported without a request.
type PersonaPresenter struct {
	store   persona.Store
	notes   Notifier
	view    PersonaView
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending []persona.Persona
	fresh   bool
	wg      sync.WaitGroup
}

func NewPersonaPresenter(store persona.Store, notes Notifier, view PersonaView, logger *slog.Logger) *PersonaPresenter {
	return &PersonaPresenter{store: store, notes: notes, view: view, logger: logger, timeout: 15 * time.Second}
}

// Refresh reloads the persona list.
func (p *PersonaPresenter) Refresh() {
	if p == nil || p.store == nil {
		return
	}
	p.async("list personas", func(ctx context.Context) (string, error) {
		list, err := p.store.List(ctx)
		if err != nil {
			return "", err
		}
		p.mu.Lock()
		p.pending, p.fresh = list, true
		p.mu.Unlock()
		return "", nil
	}, false)
}

// Save creates or updates a persona.
func (p *PersonaPresenter) Save(v persona.Persona, create bool) {
	if p == nil || p.store == nil {
		return
	}
	if err := persona.ValidateName(v.Name); err != nil {
		p.notify(notify.LevelError, errs.Message(err))
		return
	}
	p.async("save persona", func(ctx context.Context) (string, error) {
		if create {
			if err := p.store.Create(ctx, v); err != nil {
				return "", err
			}
			return "Persona '" + v.Name + "' created", nil
		}
		if err := p.store.Update(ctx, v.Name, v.Payload()); err != nil {
			return "", err
		}
		return "Persona '" + v.Name + "' updated", nil
	}, true)
}

// SaveForm builds a persona from the editor fields and saves it. A params
// text that is not a JSON object is reported without a request.
func (p *PersonaPresenter) SaveForm(name, initial, final, params string, create bool) {
	if p == nil {
		return
	}
	m, err := persona.ParseParams(params)
	if err != nil {
		p.notify(notify.LevelError, errs.Message(err))
		return
	}
	p.Save(persona.Persona{Name: strings.TrimSpace(name), InitialPrompt: initial, FinalPrompt: final, LLMParams: m}, create)
}

// Delete removes a persona.
func (p *PersonaPresenter) Delete(name string) {
	if p == nil || p.store == nil {
		return
	}
	if err := persona.ValidateName(name); err != nil {
		p.notify(notify.LevelError, errs.Message(err))
		return
	}
	p.async("delete persona", func(ctx context.Context) (string, error) {
		if err := p.store.Delete(ctx, name); err != nil {
			return "", err
		}
		return "Persona '" + name + "' deleted", nil
	}, true)
}

// Tick pushes a freshly loaded list to the view.
func (p *PersonaPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	list, fresh := p.pending, p.fresh
	p.fresh = false
	p.mu.Unlock()
	if fresh {
		p.view.SetPersonas(list)
	}
}

// Wait blocks until in-flight requests finish.
func (p *PersonaPresenter) Wait() { p.wg.Wait() }

func (p *PersonaPresenter) async(op string, fn func(ctx context.Context) (string, error), refresh bool) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		msg, err := fn(ctx)
		if err != nil {
			if p.logger != nil {
				p.logger.Error(op, "error", err)
			}
			p.notify(notify.LevelError, errs.Message(err))
			return
		}
		if msg != "" {
			p.notify(notify.LevelSuccess, msg)
		}
		if refresh {
			p.Refresh()
		}
	}()
}

func (p *PersonaPresenter) notify(level notify.Level, msg string) {
	if p.notes != nil {
		p.notes.Push(level, msg)
	}
}
