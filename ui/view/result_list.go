package view

import (
	"image"

	"github.com/soocke/vision-panel-go/ui/images"
	"github.com/soocke/vision-panel-go/ui/presenter"
	"github.com/soocke/vision-panel-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ResultList shows one row per detection or segment. Hovering a row reports
// its ordinal; leaving it clears the hover.
type ResultList interface {
	SetEntries(entries []presenter.ListEntry)
}

type listRow struct {
	swatch *LabelWidget
	text   *LabelWidget
}

type resultList struct {
	frame   *FrameWidget
	onEnter func(ordinal int)
	onLeave func()
	rows    []listRow
	entries []presenter.ListEntry
}

// NewResultList creates the list container at (row, col) of parent.
func NewResultList(parent *FrameWidget, row, col int, onEnter func(ordinal int), onLeave func()) ResultList {
	f := Frame(Borderwidth(1), Relief("groove"))
	Grid(f, In(parent), Row(row), Column(col), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return &resultList{frame: f, onEnter: onEnter, onLeave: onLeave}
}

// SetEntries restyles rows in place when only the hover changed. Rebuilding
// the rows under the pointer would fire Leave/Enter and feed back into hover.
func (l *resultList) SetEntries(entries []presenter.ListEntry) {
	if l == nil || l.frame == nil {
		return
	}
	if sameRows(l.entries, entries) {
		for i, e := range entries {
			l.style(l.rows[i], e)
		}
		l.entries = entries
		return
	}
	for _, r := range l.rows {
		Destroy(r.swatch)
		Destroy(r.text)
	}
	l.rows = l.rows[:0]
	for i, e := range entries {
		r := listRow{
			swatch: Label(Width(2), Background(e.Color)),
			text:   Label(Txt(e.Text), Anchor("w"), Width(28)),
		}
		Grid(r.swatch, In(l.frame), Row(i), Column(0), Sticky("ns"), Padx("0.2m"), Pady("0.1m"))
		Grid(r.text, In(l.frame), Row(i), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.1m"))
		ordinal := e.Ordinal
		for _, w := range []*LabelWidget{r.swatch, r.text} {
			Bind(w, "<Enter>", Command(func() {
				if l.onEnter != nil {
					l.onEnter(ordinal)
				}
			}))
			Bind(w, "<Leave>", Command(func() { call(l.onLeave) }))
		}
		l.style(r, e)
		l.rows = append(l.rows, r)
	}
	l.entries = entries
}

func (l *resultList) style(r listRow, e presenter.ListEntry) {
	p := theme.CurrentPalette()
	if e.Hovered {
		r.text.Configure(Relief("solid"), Borderwidth(1), Background(p.Border), Foreground(p.Text))
		return
	}
	r.text.Configure(Relief("flat"), Borderwidth(1), Background(p.Surface), Foreground(p.Text))
}

func sameRows(a, b []presenter.ListEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Ordinal != b[i].Ordinal || a[i].Text != b[i].Text || a[i].Color != b[i].Color {
			return false
		}
	}
	return true
}

// BarsView shows the rasterized classification chart.
type BarsView interface {
	SetImage(img image.Image)
}

type barsView struct {
	parent    *FrameWidget
	row, col  int
	label     *LabelWidget
	prevPhoto *Img
}

// NewBarsView reserves (row, col) of parent for the chart; nothing is shown
// until the first image arrives.
func NewBarsView(parent *FrameWidget, row, col int) BarsView {
	return &barsView{parent: parent, row: row, col: col}
}

func (v *barsView) SetImage(img image.Image) {
	if v == nil {
		return
	}
	if img == nil {
		if v.label != nil {
			Destroy(v.label)
			v.label = nil
		}
		if v.prevPhoto != nil {
			v.prevPhoto.Delete()
			v.prevPhoto = nil
		}
		return
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	if v.label == nil {
		v.label = Label(Image(photo), Borderwidth(1), Relief("groove"))
		Grid(v.label, In(v.parent), Row(v.row), Column(v.col), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	} else {
		v.label.Configure(Image(photo))
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = photo
}
