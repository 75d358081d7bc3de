package presenter

import (
	"time"

	"github.com/soocke/vision-panel-go/domain/notify"
)

// ToastSource provides active notifications.
type ToastSource interface {
	Latest(now time.Time) (notify.Toast, bool)
	Dismiss(id string) bool
}

// ToastView shows one toast at a time.
type ToastView interface {
	ShowToast(text string, level notify.Level)
	HideToast()
}

// ToastPresenter reflects the newest active toast in the view.
type ToastPresenter struct {
	store   ToastSource
	view    ToastView
	current string // id of the toast on screen
}

func NewToastPresenter(store ToastSource, view ToastView) *ToastPresenter {
	return &ToastPresenter{store: store, view: view}
}

// Tick shows a newer toast or hides an expired one.
func (p *ToastPresenter) Tick(now time.Time) {
	if p == nil || p.store == nil || p.view == nil {
		return
	}
	t, ok := p.store.Latest(now)
	if !ok {
		if p.current != "" {
			p.current = ""
			p.view.HideToast()
		}
		return
	}
	if t.ID != p.current {
		p.current = t.ID
		p.view.ShowToast(t.Message, t.Level)
	}
}

// Dismiss removes the toast on screen.
func (p *ToastPresenter) Dismiss() {
	if p == nil || p.store == nil || p.current == "" {
		return
	}
	p.store.Dismiss(p.current)
}
