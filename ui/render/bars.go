package render

import (
	"strconv"

	"github.com/soocke/vision-panel-go/domain/inference"
)

// Bar is one ranked classification row.
type Bar struct {
	Rank        int
	Label       string
	Score       float64
	FillPercent float64
	Text        string
	Emphasized  bool
}

// BuildBars lays out classification items as ranked bars. Only rank 0 is
// emphasized. Non classification views yield no bars.
func BuildBars(v View) []Bar {
	if v.Kind != inference.KindClassification || v.Empty() {
		return nil
	}
	bars := make([]Bar, 0, len(v.Items))
	for _, it := range v.Items {
		bars = append(bars, Bar{
			Rank:        it.Ordinal,
			Label:       it.Label,
			Score:       it.Score,
			FillPercent: clamp(it.Score, 0, 1) * 100,
			Text:        strconv.Itoa(it.Percent()) + "%",
			Emphasized:  it.Ordinal == 0,
		})
	}
	return bars
}
