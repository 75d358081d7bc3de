package view

import (
	"github.com/soocke/vision-panel-go/domain/notify"
	"github.com/soocke/vision-panel-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ToastBar shows the newest notification along the bottom of the window.
// Clicking it dismisses the toast.
type ToastBar interface {
	Show(text string, level notify.Level)
	Hide()
}

type toastBar struct {
	label *LabelWidget
}

// NewToastBar creates the toast label at row of parent.
func NewToastBar(parent *FrameWidget, row int, onDismiss func()) ToastBar {
	lbl := Label(Txt(""), Anchor("w"), Foreground("white"), Background(theme.CurrentPalette().AppBg), Padx("2m"), Pady("1m"))
	Grid(lbl, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Bind(lbl, "<Button-1>", Command(func() { call(onDismiss) }))
	return &toastBar{label: lbl}
}

func (t *toastBar) Show(text string, level notify.Level) {
	if t == nil || t.label == nil {
		return
	}
	t.label.Configure(Txt(text), Background(theme.ToastColor(level)))
}

func (t *toastBar) Hide() {
	if t == nil || t.label == nil {
		return
	}
	t.label.Configure(Txt(""), Background(theme.CurrentPalette().AppBg))
}
