package loader

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	rpdf "rsc.io/pdf"
)

// letter is used when a page has no usable MediaBox.
var letter = mediaBox{X0: 0, Y0: 0, X1: 612, Y1: 792}

type mediaBox struct {
	X0, Y0, X1, Y1 float64
}

func (m mediaBox) Width() float64  { return m.X1 - m.X0 }
func (m mediaBox) Height() float64 { return m.Y1 - m.Y0 }

// textLine is a run of glyphs sharing a baseline, in PDF user space.
type textLine struct {
	Text     string
	X0, X1   float64
	Baseline float64
	FontSize float64
}

func (l textLine) Top() float64    { return l.Baseline + 0.8*l.FontSize }
func (l textLine) Bottom() float64 { return l.Baseline - 0.25*l.FontSize }

type pdfPage struct {
	Number int
	Box    mediaBox
	Lines  []textLine
}

type pdfDoc struct {
	Path  string
	Info  map[string]string
	Pages []pdfPage
}

// readPDF extracts positioned text lines from every page of path.
func readPDF(path string) (*pdfDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := rpdf.NewReader(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	doc := &pdfDoc{Path: path, Info: docInfo(r)}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			// Counted in the page tree but unreachable: keep its slot empty.
			doc.Pages = append(doc.Pages, pdfPage{Number: i, Box: letter})
			continue
		}
		texts, err := pageTexts(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, pdfPage{
			Number: i,
			Box:    pageBox(p),
			Lines:  buildLines(texts),
		})
	}
	return doc, nil
}

// pageTexts recovers from the panics rsc.io/pdf raises on malformed content streams.
func pageTexts(p rpdf.Page) (texts []rpdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content: %v", r)
		}
	}()
	return p.Content().Text, nil
}

func docInfo(r *rpdf.Reader) map[string]string {
	info := map[string]string{}
	v := r.Trailer().Key("Info")
	if v.IsNull() {
		return info
	}
	for _, k := range []string{"Producer", "Creator", "CreationDate", "Title", "Author"} {
		if s := strings.TrimSpace(v.Key(k).Text()); s != "" {
			info[strings.ToLower(k)] = s
		}
	}
	return info
}

// pageBox walks up the page tree since MediaBox is inheritable.
func pageBox(p rpdf.Page) mediaBox {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		mb := v.Key("MediaBox")
		if mb.Kind() != rpdf.Array || mb.Len() < 4 {
			continue
		}
		b := mediaBox{
			X0: mb.Index(0).Float64(),
			Y0: mb.Index(1).Float64(),
			X1: mb.Index(2).Float64(),
			Y1: mb.Index(3).Float64(),
		}
		if b.X1 < b.X0 {
			b.X0, b.X1 = b.X1, b.X0
		}
		if b.Y1 < b.Y0 {
			b.Y0, b.Y1 = b.Y1, b.Y0
		}
		if b.Width() > 0 && b.Height() > 0 {
			return b
		}
	}
	return letter
}

// buildLines groups glyphs into lines, top to bottom, each read left to right.
// Wide horizontal gaps become two spaces so column layouts survive in the text.
func buildLines(texts []rpdf.Text) []textLine {
	glyphs := make([]rpdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			glyphs = append(glyphs, t)
		}
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var lines []textLine
	var cur []rpdf.Text
	flush := func() {
		if len(cur) > 0 {
			if l, ok := joinGlyphs(cur); ok {
				lines = append(lines, l)
			}
			cur = nil
		}
	}
	for _, g := range glyphs {
		if len(cur) > 0 {
			tol := math.Max(1, 0.3*math.Max(g.FontSize, cur[0].FontSize))
			if math.Abs(cur[0].Y-g.Y) > tol {
				flush()
			}
		}
		cur = append(cur, g)
	}
	flush()
	return lines
}

func joinGlyphs(glyphs []rpdf.Text) (textLine, bool) {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var b strings.Builder
	l := textLine{X0: glyphs[0].X, X1: glyphs[0].X, Baseline: glyphs[0].Y}
	var prev *rpdf.Text
	for i := range glyphs {
		g := &glyphs[i]
		if prev != nil {
			gap := g.X - (prev.X + prev.W)
			size := math.Max(g.FontSize, 1)
			switch {
			case gap > 2*size:
				b.WriteString("  ")
			case gap > 0.2*size && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " "):
				b.WriteString(" ")
			}
		}
		b.WriteString(g.S)
		l.X1 = math.Max(l.X1, g.X+g.W)
		l.FontSize = math.Max(l.FontSize, g.FontSize)
		prev = g
	}
	l.Text = strings.TrimRight(b.String(), " ")
	if strings.TrimSpace(l.Text) == "" {
		return textLine{}, false
	}
	return l, true
}
