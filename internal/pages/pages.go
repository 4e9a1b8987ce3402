// Package pages turns a page-selection request into a sorted list of 1-based
// page numbers.
package pages

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMissingSelection     = errors.New("provide either pages or both start and end page")
	ErrInvalidRange         = errors.New("1 <= start page <= end page is required")
	ErrInvalidSelectionType = errors.New("pages must be an integer or a list of integers")
)

// MaxRangePages bounds the number of pages a single Range may name.
const MaxRangePages = 100_000

// Selection is one of Single, Set or Range.
type Selection interface {
	resolve() ([]int, error)
}

type Single int

type Set []int

// Range is inclusive on both ends.
type Range struct {
	Start int
	End   int
}

func (s Single) resolve() ([]int, error) {
	if s < 1 {
		return nil, fmt.Errorf("page %d: %w", int(s), ErrInvalidRange)
	}
	return []int{int(s)}, nil
}

func (s Set) resolve() ([]int, error) {
	seen := make(map[int]bool, len(s))
	out := make([]int, 0, len(s))
	for _, p := range s {
		if p < 1 {
			return nil, fmt.Errorf("page %d: %w", p, ErrInvalidRange)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

func (r Range) resolve() ([]int, error) {
	if r.Start < 1 || r.End < r.Start {
		return nil, fmt.Errorf("start %d, end %d: %w", r.Start, r.End, ErrInvalidRange)
	}
	if r.End-r.Start >= MaxRangePages {
		return nil, fmt.Errorf("start %d, end %d spans more than %d pages: %w", r.Start, r.End, MaxRangePages, ErrInvalidRange)
	}
	out := make([]int, 0, r.End-r.Start+1)
	for p := r.Start; p <= r.End; p++ {
		out = append(out, p)
	}
	return out, nil
}

// Resolve returns the ascending, duplicate-free page numbers named by sel.
func Resolve(sel Selection) ([]int, error) {
	if sel == nil {
		return nil, ErrMissingSelection
	}
	return sel.resolve()
}

// FromValue builds a Selection from a loosely typed value such as a decoded YAML
// field. A nil v selects the range given by start and end, both of which must be set.
func FromValue(v any, start, end *int) (Selection, error) {
	if v == nil {
		if start == nil || end == nil {
			return nil, ErrMissingSelection
		}
		return Range{Start: *start, End: *end}, nil
	}
	if n, ok := toInt(v); ok {
		return Single(n), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("got %T: %w", v, ErrInvalidSelectionType)
	}
	set := make(Set, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		n, ok := toInt(item)
		if !ok {
			return nil, fmt.Errorf("item %d is %T: %w", i, item, ErrInvalidSelectionType)
		}
		set = append(set, n)
	}
	return set, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// Parse reads a command-line page expression: "4", "1,10,4", "2-6" or "1,3-5".
// A lone range yields a Range; anything with commas yields a Set. The result is
// validated, so a nil error means Resolve succeeds.
func Parse(expr string) (Selection, error) {
	sel, err := parse(expr)
	if err != nil {
		return nil, err
	}
	if _, err := sel.resolve(); err != nil {
		return nil, err
	}
	return sel, nil
}

func parse(expr string) (Selection, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrMissingSelection
	}
	tokens := strings.Split(expr, ",")
	if len(tokens) == 1 {
		tok := strings.TrimSpace(tokens[0])
		if strings.Contains(tok, "-") {
			return parseRange(tok)
		}
		n, err := parseInt(tok)
		if err != nil {
			return nil, err
		}
		return Single(n), nil
	}

	var set Set
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if strings.Contains(tok, "-") {
			r, err := parseRange(tok)
			if err != nil {
				return nil, err
			}
			expanded, err := r.resolve()
			if err != nil {
				return nil, err
			}
			set = append(set, expanded...)
			continue
		}
		n, err := parseInt(tok)
		if err != nil {
			return nil, err
		}
		set = append(set, n)
	}
	return set, nil
}

func parseRange(tok string) (Range, error) {
	lo, hi, _ := strings.Cut(tok, "-")
	start, err := parseInt(lo)
	if err != nil {
		return Range{}, err
	}
	end, err := parseInt(hi)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: start, End: end}
	if _, err := r.resolve(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func parseInt(tok string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", tok, ErrInvalidSelectionType)
	}
	return n, nil
}
