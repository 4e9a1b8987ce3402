package loader

import (
	"regexp"
	"sort"
	"strings"

	"github.com/thywilljoshua/pdfloader/internal/element"
)

// Heading patterns: numeric, roman numerals, and explicit Appendix prefix.
var (
	headingNumRe      = regexp.MustCompile(`^\s*\d+(?:\.\d+)*\.?\s+\p{Lu}\S*`)
	headingRomanRe    = regexp.MustCompile(`^\s*[IVXLC]+\.\s+\p{Lu}`)
	headingAppendixRe = regexp.MustCompile(`^\s*(?:Appendix|APPENDIX)\s+[A-Z](?:\.\d+)*\b`)
	bulletRe          = regexp.MustCompile(`^\s*(?:[•\-\*–·▪●◦]|\(?\d{1,2}[\.\)]|\(?[a-z][\.\)])\s+\S`)
	twoPlusSpaces     = regexp.MustCompile(`\s{2,}`)
)

// marginBand is the share of page height treated as header or footer area.
const marginBand = 0.06

type block struct {
	Lines []textLine
}

func (b block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = strings.TrimSpace(l.Text)
	}
	return strings.Join(parts, "\n")
}

func (b block) FontSize() float64 {
	size := 0.0
	for _, l := range b.Lines {
		if l.FontSize > size {
			size = l.FontSize
		}
	}
	return size
}

// Bounds returns the block rectangle in PDF user space.
func (b block) Bounds() (x0, bottom, x1, top float64) {
	x0, x1 = b.Lines[0].X0, b.Lines[0].X1
	top, bottom = b.Lines[0].Top(), b.Lines[0].Bottom()
	for _, l := range b.Lines[1:] {
		x0 = min(x0, l.X0)
		x1 = max(x1, l.X1)
		top = max(top, l.Top())
		bottom = min(bottom, l.Bottom())
	}
	return x0, bottom, x1, top
}

// splitBlocks groups consecutive lines into blocks. A block ends at a vertical gap
// wider than the font size, at a font size change, or before a line that starts a
// heading or list item.
func splitBlocks(lines []textLine) []block {
	var blocks []block
	var cur block
	for i, l := range lines {
		if i > 0 && len(cur.Lines) > 0 {
			prev := lines[i-1]
			gap := prev.Bottom() - l.Top()
			size := max(prev.FontSize, l.FontSize)
			ratio := l.FontSize / max(prev.FontSize, 0.1)
			if gap > 0.6*size || ratio > 1.15 || ratio < 0.87 || startsElement(l.Text) || isHeading(prev.Text) {
				blocks = append(blocks, cur)
				cur = block{}
			}
		}
		cur.Lines = append(cur.Lines, l)
	}
	if len(cur.Lines) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func startsElement(s string) bool {
	return isHeading(s) || bulletRe.MatchString(s)
}

func isHeading(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) > 120 || strings.HasSuffix(s, ".") || len(splitBy2Spaces(s)) > 1 {
		return false
	}
	return headingAppendixRe.MatchString(s) || headingNumRe.MatchString(s) || headingRomanRe.MatchString(s)
}

// classify assigns a category to a block given the page's typical font size and
// height.
func classify(b block, bodySize, pageTop, pageBottom float64) string {
	text := b.Text()
	_, bottom, _, top := b.Bounds()
	height := pageTop - pageBottom
	short := len(b.Lines) <= 2 && len(text) < 120

	switch {
	case short && bottom > pageTop-marginBand*height:
		return element.Header
	case short && top < pageBottom+marginBand*height:
		return element.Footer
	case isTable(b.Lines):
		return element.Table
	case short && (isHeading(text) || (bodySize > 0 && b.FontSize() >= 1.2*bodySize && !strings.HasSuffix(text, "."))):
		return element.Title
	case bulletRe.MatchString(text):
		return element.ListItem
	case isNarrative(text):
		return element.NarrativeText
	default:
		return element.UncategorizedText
	}
}

// isTable reports whether at least two lines split into the same number (>= 2)
// of columns on runs of two or more spaces.
func isTable(lines []textLine) bool {
	if len(lines) < 2 {
		return false
	}
	cols := 0
	for _, l := range lines {
		parts := splitBy2Spaces(l.Text)
		if len(parts) < 2 {
			return false
		}
		if cols == 0 {
			cols = len(parts)
		}
		if len(parts) != cols {
			return false
		}
	}
	return true
}

func splitBy2Spaces(s string) []string {
	return twoPlusSpaces.Split(strings.TrimSpace(s), -1)
}

func isNarrative(s string) bool {
	words := strings.Fields(s)
	if len(words) >= 5 {
		return true
	}
	return len(words) >= 2 && strings.ContainsAny(s[len(s)-1:], ".!?:")
}

// bodyFontSize is the median line font size, the size of running text.
func bodyFontSize(lines []textLine) float64 {
	if len(lines) == 0 {
		return 0
	}
	sizes := make([]float64, len(lines))
	for i, l := range lines {
		sizes[i] = l.FontSize
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}
