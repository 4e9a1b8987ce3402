package loader

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thywilljoshua/pdfloader/internal/ai"
	"github.com/thywilljoshua/pdfloader/internal/element"
)

var elementNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/thywilljoshua/pdfloader/element"))

// source describes the file an element came from.
type source struct {
	Path     string
	Name     string
	Dir      string
	Modified string
}

func statSource(path string) (source, error) {
	st, err := os.Stat(path)
	if err != nil {
		return source{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return source{
		Path:     path,
		Name:     filepath.Base(path),
		Dir:      filepath.Dir(abs),
		Modified: st.ModTime().UTC().Format(time.RFC3339),
	}, nil
}

func (s source) metadata() element.Metadata {
	return element.Metadata{
		{Key: "source", Value: s.Path},
		{Key: "filename", Value: s.Name},
		{Key: "file_directory", Value: s.Dir},
		{Key: "filetype", Value: "application/pdf"},
		{Key: "last_modified", Value: s.Modified},
	}
}

func (s source) elementID(page, index int, text string) string {
	key := fmt.Sprintf("%s\x00%d\x00%d\x00%s", s.Path, page, index, text)
	return uuid.NewSHA1(elementNamespace, []byte(key)).String()
}

func (s source) newElement(page, index int, category, text string, coords *element.Coordinates) element.Element {
	md := s.metadata()
	md.Set("page_number", page)
	md.Set("category", category)
	md.Set("element_id", s.elementID(page, index, text))
	return element.Element{
		PageNumber:  page,
		Category:    category,
		Content:     text,
		Coordinates: coords,
		Metadata:    md,
	}
}

func (l *Loader) loadLayout(ctx context.Context, path string) ([]element.Element, error) {
	src, err := statSource(path)
	if err != nil {
		return nil, err
	}

	var els []element.Element
	if l.opts.PartitionViaAPI {
		part, err := l.opts.Partitioner.Partition(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("partition via API: %w", err)
		}
		els = l.partitionElements(part, src)
	} else {
		if l.opts.Strategy == StrategyHiRes {
			l.opts.Logger.Warn().Str("path", path).Msg("hi_res layout needs partitioning via API; using fast strategy")
		}
		doc, err := readPDF(path)
		if err != nil {
			return nil, err
		}
		els = layoutElements(doc, src, l.clean)
	}

	switch l.opts.Mode {
	case ModePaged:
		return pagedElements(els, src), nil
	case ModeSingle:
		return singleElement(els, src), nil
	default:
		return els, nil
	}
}

// layoutElements runs block detection on every page. Coordinates are in PDF
// points relative to the MediaBox, flipped to a top-left origin.
func layoutElements(doc *pdfDoc, src source, clean func(string) string) []element.Element {
	var out []element.Element
	for _, p := range doc.Pages {
		body := bodyFontSize(p.Lines)
		for i, b := range splitBlocks(p.Lines) {
			text := clean(b.Text())
			if strings.TrimSpace(text) == "" {
				continue
			}
			x0, bottom, x1, top := b.Bounds()
			coords := &element.Coordinates{
				Points:       element.Rect(x0-p.Box.X0, p.Box.Y1-top, x1-p.Box.X0, p.Box.Y1-bottom),
				LayoutWidth:  p.Box.Width(),
				LayoutHeight: p.Box.Height(),
				System:       element.PointSpace,
			}
			category := classify(b, body, p.Box.Y1, p.Box.Y0)
			out = append(out, src.newElement(p.Number, i, category, text, coords))
		}
	}
	return out
}

func (l *Loader) partitionElements(part ai.Partition, src source) []element.Element {
	out := make([]element.Element, 0, len(part.Elements))
	for i, pe := range part.Elements {
		if pe.PageNumber < 1 {
			l.opts.Logger.Warn().Int("element", i).Int("page", pe.PageNumber).Msg("dropping partitioned element without a page")
			continue
		}
		category := pe.Category
		if category == "" {
			category = element.UncategorizedText
		}
		out = append(out, src.newElement(pe.PageNumber, i, category, l.clean(pe.Text), boxCoordinates(pe.Box)))
	}
	return out
}

// boxCoordinates converts a [ymin, xmin, ymax, xmax] box in the 0..1000 frame.
// An all-zero or degenerate box yields no coordinates.
func boxCoordinates(box [4]float64) *element.Coordinates {
	c := func(v float64) float64 { return math.Max(0, math.Min(ai.BoxScale, v)) }
	y0, x0, y1, x1 := c(box[0]), c(box[1]), c(box[2]), c(box[3])
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if x1 == x0 || y1 == y0 {
		return nil
	}
	return &element.Coordinates{
		Points:       element.Rect(x0, y0, x1, y1),
		LayoutWidth:  ai.BoxScale,
		LayoutHeight: ai.BoxScale,
		System:       element.Normalized1000,
	}
}

// pagedElements merges the elements of each page into one Text element, in order
// of first appearance.
func pagedElements(els []element.Element, src source) []element.Element {
	var order []int
	texts := map[int][]string{}
	for _, el := range els {
		if _, ok := texts[el.PageNumber]; !ok {
			order = append(order, el.PageNumber)
		}
		texts[el.PageNumber] = append(texts[el.PageNumber], el.Content)
	}
	out := make([]element.Element, 0, len(order))
	for _, p := range order {
		md := src.metadata()
		md.Set("page_number", p)
		out = append(out, element.Element{
			PageNumber: p,
			Category:   element.Text,
			Content:    strings.Join(texts[p], "\n\n"),
			Metadata:   md,
		})
	}
	return out
}

func singleElement(els []element.Element, src source) []element.Element {
	parts := make([]string, len(els))
	for i, el := range els {
		parts[i] = el.Content
	}
	return []element.Element{{
		PageNumber: 1,
		Category:   element.Text,
		Content:    strings.Join(parts, "\n\n"),
		Metadata:   src.metadata(),
	}}
}
