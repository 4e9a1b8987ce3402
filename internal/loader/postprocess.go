package loader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrUnknownPostProcessor = errors.New("unknown post processor")

// PostProcessor rewrites the text content of every loaded element.
type PostProcessor func(string) string

var (
	spaceRunRe     = regexp.MustCompile(`[ \t\x{00A0}]+`)
	blankLinesRe   = regexp.MustCompile(`\n{3,}`)
	dashRe         = regexp.MustCompile(`[\x{2010}-\x{2015}\x{2212}]`)
	leadingBullets = regexp.MustCompile(`(?m)^\s*[•▪●◦·\x{2023}\x{2043}]\s*`)
)

// CleanWhitespace collapses runs of spaces and blank lines and trims the ends.
func CleanWhitespace(s string) string {
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// CleanDashes replaces unicode dashes and the minus sign with '-'.
func CleanDashes(s string) string {
	return dashRe.ReplaceAllString(s, "-")
}

// CleanBullets strips bullet glyphs at the start of lines.
func CleanBullets(s string) string {
	return leadingBullets.ReplaceAllString(s, "")
}

// NormalizeUnicode applies NFKC, folding ligatures and compatibility forms.
func NormalizeUnicode(s string) string {
	return norm.NFKC.String(s)
}

var builtinPostProcessors = map[string]PostProcessor{
	"whitespace": CleanWhitespace,
	"dashes":     CleanDashes,
	"bullets":    CleanBullets,
	"unicode":    NormalizeUnicode,
}

// PostProcessorsByName resolves built-in post processors, keeping the given order.
func PostProcessorsByName(names []string) ([]PostProcessor, error) {
	out := make([]PostProcessor, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		pp, ok := builtinPostProcessors[n]
		if !ok {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknownPostProcessor)
		}
		out = append(out, pp)
	}
	return out, nil
}

func applyPostProcessors(s string, pps []PostProcessor) string {
	for _, pp := range pps {
		s = pp(s)
	}
	return s
}
