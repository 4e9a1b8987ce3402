package loader

import (
	"strconv"
	"strings"

	"github.com/thywilljoshua/pdfloader/internal/element"
)

func (l *Loader) loadPlain(path string) ([]element.Element, error) {
	doc, err := readPDF(path)
	if err != nil {
		return nil, err
	}
	return plainElements(doc, l.clean), nil
}

// plainElements emits one element per page, including pages without text, so
// that positional page lookup stays aligned with the document.
func plainElements(doc *pdfDoc, clean func(string) string) []element.Element {
	out := make([]element.Element, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		lines := make([]string, len(p.Lines))
		for i, ln := range p.Lines {
			lines[i] = ln.Text
		}

		var md element.Metadata
		for _, k := range []string{"producer", "creator", "creationdate", "title", "author"} {
			if v, ok := doc.Info[k]; ok {
				md.Set(k, v)
			}
		}
		md.Set("source", doc.Path)
		md.Set("total_pages", len(doc.Pages))
		md.Set("page", p.Number-1)
		md.Set("page_label", strconv.Itoa(p.Number))

		out = append(out, element.Element{
			PageNumber: p.Number,
			Category:   element.Text,
			Content:    clean(strings.Join(lines, "\n")),
			Metadata:   md,
		})
	}
	return out
}
