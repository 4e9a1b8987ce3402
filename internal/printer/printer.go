// Package printer writes per-page views of loaded elements for a human reader.
package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thywilljoshua/pdfloader/internal/collate"
	"github.com/thywilljoshua/pdfloader/internal/element"
)

var (
	pageHeader = color.New(color.FgCyan, color.Bold)
	metaHeader = color.New(color.FgMagenta)
	warning    = color.New(color.FgYellow)
)

const rule = "------------------------------"

type Printer struct {
	Out          io.Writer
	ShowMetadata bool
	// IgnoredKeys are excluded from page level metadata. Nil means
	// collate.DefaultIgnoredKeys.
	IgnoredKeys []string
}

func (p *Printer) ignored() []string {
	if p.IgnoredKeys == nil {
		return collate.DefaultIgnoredKeys
	}
	return p.IgnoredKeys
}

// PrintLayout prints elements grouped by their page_number, one section per page
// in the given order.
func (p *Printer) PrintLayout(elements []element.Element, pages []int) {
	groups := collate.GroupByPage(elements, pages)
	for _, n := range pages {
		group := groups[n]
		if len(group) == 0 {
			p.noContent(n)
			continue
		}
		p.header(n)
		for i, el := range group {
			fmt.Fprintf(p.Out, "[%d] %s\n\n", i+1, el.Content)
		}
		if p.ShowMetadata {
			metaHeader.Fprintln(p.Out, "📑 Page Level Metadata:")
			fmt.Fprintf(p.Out, "%s\n\n", collate.ConsensusMetadata(group, p.ignored()))
			metaHeader.Fprintln(p.Out, "📑 Metadata (first chunk):")
			fmt.Fprintf(p.Out, "%s\n\n", group[0].Metadata)
		}
	}
}

// PrintPlain prints one element per page, picking elements by position.
func (p *Printer) PrintPlain(elements []element.Element, pages []int) {
	groups := collate.GroupByIndex(elements, pages)
	for _, n := range pages {
		group := groups[n]
		if len(group) == 0 {
			p.noContent(n)
			continue
		}
		el := group[0]
		p.header(n)
		fmt.Fprintf(p.Out, "%s\n\n", el.Content)
		if p.ShowMetadata {
			metaHeader.Fprintf(p.Out, "📑 Metadata (%d):\n", n)
			fmt.Fprintf(p.Out, "%s\n\n", el.Metadata)
		}
	}
}

func (p *Printer) header(n int) {
	fmt.Fprintln(p.Out)
	pageHeader.Fprintf(p.Out, "📄 Page %d content\n", n)
	fmt.Fprintln(p.Out, rule)
}

func (p *Printer) noContent(n int) {
	warning.Fprintf(p.Out, "⚠️  No content found for page %d\n\n", n)
}
