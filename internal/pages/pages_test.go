package pages

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestResolveRange(t *testing.T) {
	for _, tc := range []struct{ start, end int }{{1, 1}, {1, 5}, {3, 9}, {10, 12}} {
		got, err := Resolve(Range{Start: tc.start, End: tc.end})
		require.NoError(t, err)
		require.Len(t, got, tc.end-tc.start+1)
		for i, p := range got {
			assert.Equal(t, tc.start+i, p)
		}
	}
}

func TestResolveInvalidRange(t *testing.T) {
	_, err := Resolve(Range{Start: 0, End: 5})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Resolve(Range{Start: 5, End: 2})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestResolveRangeTooLong(t *testing.T) {
	_, err := Resolve(Range{Start: 1, End: math.MaxInt})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Resolve(Range{Start: 1, End: MaxRangePages + 1})
	assert.ErrorIs(t, err, ErrInvalidRange)

	got, err := Resolve(Range{Start: 1, End: MaxRangePages})
	require.NoError(t, err)
	assert.Len(t, got, MaxRangePages)
}

func TestResolveRejectsNonPositivePages(t *testing.T) {
	_, err := Resolve(Single(0))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Resolve(Set{-2, 0, 3})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestResolveSetDedupesAndSorts(t *testing.T) {
	got, err := Resolve(Set{3, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestResolveSingle(t *testing.T) {
	got, err := Resolve(Single(7))
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got)
}

func TestResolveNil(t *testing.T) {
	_, err := Resolve(nil)
	assert.ErrorIs(t, err, ErrMissingSelection)
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name  string
		v     any
		start *int
		end   *int
		want  []int
		err   error
	}{
		{name: "int", v: 4, want: []int{4}},
		{name: "yaml float", v: float64(2), want: []int{2}},
		{name: "int slice", v: []int{10, 1, 4}, want: []int{1, 4, 10}},
		{name: "any slice", v: []any{3, 1, 3}, want: []int{1, 3}},
		{name: "array", v: [2]int64{2, 2}, want: []int{2}},
		{name: "range", start: intPtr(2), end: intPtr(4), want: []int{2, 3, 4}},
		{name: "missing end", start: intPtr(2), err: ErrMissingSelection},
		{name: "nothing", err: ErrMissingSelection},
		{name: "bad range", start: intPtr(0), end: intPtr(3), err: ErrInvalidRange},
		{name: "string", v: "3", err: ErrInvalidSelectionType},
		{name: "fraction", v: 1.5, err: ErrInvalidSelectionType},
		{name: "mixed slice", v: []any{1, "two"}, err: ErrInvalidSelectionType},
		{name: "zero", v: 0, err: ErrInvalidRange},
		{name: "negative in slice", v: []int{3, -1}, err: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := FromValue(tt.v, tt.start, tt.end)
			if err == nil {
				var got []int
				got, err = Resolve(sel)
				if tt.err == nil {
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return
				}
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want []int
		err  error
	}{
		{expr: "4", want: []int{4}},
		{expr: "1,10,4", want: []int{1, 4, 10}},
		{expr: " 2-6 ", want: []int{2, 3, 4, 5, 6}},
		{expr: "5,1-3,2", want: []int{1, 2, 3, 5}},
		{expr: "", err: ErrMissingSelection},
		{expr: "x", err: ErrInvalidSelectionType},
		{expr: "1,b", err: ErrInvalidSelectionType},
		{expr: "0-2", err: ErrInvalidRange},
		{expr: "6-2", err: ErrInvalidRange},
		{expr: "1,2-200001", err: ErrInvalidRange},
		{expr: "1-200001", err: ErrInvalidRange},
		{expr: "0", err: ErrInvalidRange},
		{expr: "3,0", err: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			sel, err := Parse(tt.expr)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			got, err := Resolve(sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLoneRangeIsRange(t *testing.T) {
	sel, err := Parse("3-4")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 3, End: 4}, sel)
}
