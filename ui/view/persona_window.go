package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/vision-panel-go/domain/persona"
	"github.com/soocke/vision-panel-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// PersonaHandlers are invoked from the persona editor.
type PersonaHandlers struct {
	OnRefresh func()
	OnSave    func(name, initial, final, params string, create bool)
	OnDelete  func(name string)
}

// PersonaWindow is the optional persona editor window.
type PersonaWindow interface {
	OpenOrFocus()
	SetPersonas(list []persona.Persona)
}

type personaWindow struct {
	logger *slog.Logger
	h      PersonaHandlers
	win    *ToplevelWidget

	names   *TComboboxWidget
	name    *TextWidget
	initial *TextWidget
	final   *TextWidget
	params  *TextWidget

	list []persona.Persona
}

// NewPersonaWindow creates the editor manager; the window opens on demand.
func NewPersonaWindow(h PersonaHandlers, logger *slog.Logger) PersonaWindow {
	return &personaWindow{h: h, logger: logger}
}

func (v *personaWindow) OpenOrFocus() {
	if v.win != nil {
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Personas")
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.destroy)
	GridColumnConfigure(win.Window, 1, Weight(1))

	row := 0
	Grid(win.Label(Txt("Saved"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.names = win.TCombobox(Values(v.nameValues()), Width(30), State("readonly"))
	Grid(v.names, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	Bind(v.names, "<<ComboboxSelected>>", Command(v.selected))
	row++

	makeRow := func(label string, height int) *TextWidget {
		Grid(win.Label(Txt(label), Anchor("w")), Row(row), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.15m"))
		w := win.Text(Height(height), Width(48))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		row++
		return w
	}
	v.name = makeRow("Name", 1)
	v.initial = makeRow("Initial prompt", 4)
	v.final = makeRow("Final prompt", 4)
	v.params = makeRow("LLM params (JSON)", 3)
	setText(v.params, "{}")

	controls := win.Frame()
	Grid(controls, Row(row), Column(0), Columnspan(2), Sticky("we"))
	buttons := []struct {
		label string
		style string
		fn    func()
	}{
		{"Create", theme.StylePrimaryButton, func() { v.save(true) }},
		{"Update", theme.StylePrimaryButton, func() { v.save(false) }},
		{"Delete", theme.StyleDangerButton, v.remove},
		{"Refresh", "", func() { call(v.h.OnRefresh) }},
		{"Close [Esc]", "", v.destroy},
	}
	for i, b := range buttons {
		opts := []Opt{Txt(b.label), Command(b.fn)}
		if b.style != "" {
			opts = append(opts, Style(b.style))
		}
		Grid(win.TButton(opts...), In(controls), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}
	Bind(win, "<Escape>", Command(v.destroy))
	call(v.h.OnRefresh)
}

func (v *personaWindow) SetPersonas(list []persona.Persona) {
	v.list = list
	if v.names != nil {
		v.names.Configure(Values(v.nameValues()))
	}
}

func (v *personaWindow) nameValues() []string {
	if len(v.list) == 0 {
		return []string{"<none>"}
	}
	out := make([]string, len(v.list))
	for i, p := range v.list {
		out[i] = p.Name
	}
	return out
}

func (v *personaWindow) selected() {
	idx, err := strconv.Atoi(v.names.Current(nil))
	if err != nil || idx < 0 || idx >= len(v.list) {
		return
	}
	p := v.list[idx]
	setText(v.name, p.Name)
	setText(v.initial, p.InitialPrompt)
	setText(v.final, p.FinalPrompt)
	setText(v.params, persona.FormatParams(p.LLMParams))
}

func (v *personaWindow) save(create bool) {
	if v.h.OnSave == nil || v.win == nil {
		return
	}
	v.h.OnSave(strings.TrimSpace(textOf(v.name)), textOf(v.initial), textOf(v.final), textOf(v.params), create)
}

func (v *personaWindow) remove() {
	if v.h.OnDelete == nil || v.win == nil {
		return
	}
	v.h.OnDelete(strings.TrimSpace(textOf(v.name)))
}

func (v *personaWindow) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.names, v.name, v.initial, v.final, v.params = nil, nil, nil, nil, nil
	}
}

// textOf returns the content of a Text widget without the trailing newline Tk appends.
func textOf(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSuffix(strings.Join(w.Get("1.0", END), ""), "\n")
}

func setText(w *TextWidget, s string) {
	if w == nil {
		return
	}
	w.Delete("1.0", END)
	w.Insert("1.0", s)
}
