package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/pdfloader/internal/element"
)

func TestBuildLines(t *testing.T) {
	glyphs := []rpdf.Text{
		{S: "Next", X: 72, Y: 686, W: 20, FontSize: 10},
		{S: "World", X: 100, Y: 700, W: 25, FontSize: 10},
		{S: "B", X: 120, Y: 672, W: 5, FontSize: 10},
		{S: "Hello", X: 72, Y: 700, W: 25, FontSize: 10},
		{S: "", X: 300, Y: 700, W: 5, FontSize: 10},
		{S: "A", X: 72, Y: 672, W: 5, FontSize: 10},
	}
	lines := buildLines(glyphs)
	require.Len(t, lines, 3)
	assert.Equal(t, textLine{Text: "Hello World", X0: 72, X1: 125, Baseline: 700, FontSize: 10}, lines[0])
	assert.Equal(t, "Next", lines[1].Text)
	assert.Equal(t, "A  B", lines[2].Text)
}

func TestBuildLinesToleratesBaselineJitter(t *testing.T) {
	lines := buildLines([]rpdf.Text{
		{S: "x", X: 72, Y: 700, W: 5, FontSize: 10},
		{S: "2", X: 77, Y: 698, W: 4, FontSize: 10},
	})
	require.Len(t, lines, 1)
	assert.Equal(t, "x2", lines[0].Text)
}

func line(text string, baseline, size float64) textLine {
	return textLine{Text: text, X0: 72, X1: 72 + float64(len(text))*size*0.5, Baseline: baseline, FontSize: size}
}

func TestSplitBlocks(t *testing.T) {
	lines := []textLine{
		line("1 Introduction", 700, 14),
		line("This is the first line of text", 680, 10),
		line("and it continues here.", 668, 10),
		line("• first point", 656, 10),
		line("• second point", 644, 10),
	}
	blocks := splitBlocks(lines)
	require.Len(t, blocks, 4)
	assert.Equal(t, "1 Introduction", blocks[0].Text())
	assert.Equal(t, "This is the first line of text\nand it continues here.", blocks[1].Text())
	assert.Equal(t, "• first point", blocks[2].Text())
	assert.Equal(t, "• second point", blocks[3].Text())
}

func TestSplitBlocksOnVerticalGap(t *testing.T) {
	blocks := splitBlocks([]textLine{
		line("first paragraph ends", 700, 10),
		line("second paragraph starts", 670, 10),
	})
	assert.Len(t, blocks, 2)
}

func TestClassify(t *testing.T) {
	const top, bottom = 792, 0
	tests := []struct {
		name  string
		lines []textLine
		want  string
	}{
		{name: "numbered heading", lines: []textLine{line("1 Introduction", 700, 14)}, want: element.Title},
		{name: "large font", lines: []textLine{line("Quarterly Results", 600, 18)}, want: element.Title},
		{name: "narrative", lines: []textLine{line("This is the first line of text", 500, 10), line("and it continues here.", 488, 10)}, want: element.NarrativeText},
		{name: "bullet", lines: []textLine{line("• first point", 450, 10)}, want: element.ListItem},
		{name: "header", lines: []textLine{line("ACME Report", 770, 9)}, want: element.Header},
		{name: "footer", lines: []textLine{line("Page 3", 20, 9)}, want: element.Footer},
		{name: "table", lines: []textLine{line("Year  Revenue", 400, 10), line("2024  100", 388, 10)}, want: element.Table},
		{name: "fragment", lines: []textLine{line("Fig 2", 300, 10)}, want: element.UncategorizedText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(block{Lines: tt.lines}, 10, top, bottom))
		})
	}
}

func TestIsHeading(t *testing.T) {
	assert.True(t, isHeading("2.1 Methods"))
	assert.True(t, isHeading("IV. Results"))
	assert.True(t, isHeading("Appendix B"))
	assert.False(t, isHeading("3 apples were eaten."))
	assert.False(t, isHeading("2024  Revenue"))
	assert.False(t, isHeading("Summary"))
}

func TestBodyFontSize(t *testing.T) {
	assert.Equal(t, 0.0, bodyFontSize(nil))
	assert.Equal(t, 10.0, bodyFontSize([]textLine{
		line("a", 1, 14), line("b", 1, 10), line("c", 1, 10), line("d", 1, 10), line("e", 1, 10),
	}))
}

func TestBlockBounds(t *testing.T) {
	b := block{Lines: []textLine{
		{Text: "wide line", X0: 72, X1: 200, Baseline: 700, FontSize: 10},
		{Text: "narrow", X0: 80, X1: 120, Baseline: 688, FontSize: 10},
	}}
	x0, bot, x1, top := b.Bounds()
	assert.Equal(t, 72.0, x0)
	assert.Equal(t, 200.0, x1)
	assert.InDelta(t, 708.0, top, 1e-9)
	assert.InDelta(t, 685.5, bot, 1e-9)
}
