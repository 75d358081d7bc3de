package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

// SVGOptions controls the exported document.
type SVGOptions struct {
	// Width and Height of the rendered element; zero uses the frame size.
	Width  int
	Height int
	Title  string
}

// WriteSVG writes prims as an SVG document whose viewBox is the image frame,
// so the overlay scales with "contain" semantics to any rendered size.
func WriteSVG(w io.Writer, frame Frame, prims []Primitive, opts SVGOptions) error {
	if frame.Width <= 0 || frame.Height <= 0 {
		return fmt.Errorf("write svg: invalid frame %dx%d", frame.Width, frame.Height)
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = frame.Width, frame.Height
	}
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Decimals = 1
	doc.Start(float64(width), float64(height),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, frame.Width, frame.Height),
		`preserveAspectRatio="xMidYMid meet"`)
	if opts.Title != "" {
		doc.Title(opts.Title)
	}
	for _, p := range prims {
		doc.Group(fmt.Sprintf(`data-ordinal="%d"`, p.Ordinal))
		doc.Rect(p.Box.X1, p.Box.Y1, p.Box.Width(), p.Box.Height(), boxStyle(p))
		c := p.Chip
		doc.Rect(c.X, c.Y, c.W, c.H, fmt.Sprintf("fill:%s;fill-opacity:%.2f", p.Hex, chipOpacity(p)))
		doc.Text(c.X+c.Padding, c.Y+c.Padding+c.FontSize*0.85, c.Text,
			fmt.Sprintf("fill:#ffffff;font-family:sans-serif;font-size:%.1fpx", c.FontSize))
		doc.Gend()
	}
	doc.End()
	return ew.err
}

func boxStyle(p Primitive) string {
	s := fmt.Sprintf("fill:%s;fill-opacity:%.2f;stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f",
		p.Hex, p.FillOpacity, p.Hex, p.StrokeWidth, p.StrokeOpacity)
	if p.Dashed {
		s += ";stroke-dasharray:6 4"
	}
	return s
}

func chipOpacity(p Primitive) float64 {
	if p.Hovered {
		return 1
	}
	return 0.85
}

// errWriter keeps the first write error; the svg writer ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
