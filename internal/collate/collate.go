// Package collate groups extracted elements by page and derives the metadata
// shared by every element of a page.
package collate

import (
	"reflect"

	"github.com/thywilljoshua/pdfloader/internal/element"
)

// DefaultIgnoredKeys are left out of page-level metadata; they differ per element
// by nature.
var DefaultIgnoredKeys = []string{"coordinates", "bbox"}

// GroupByPage selects elements by their PageNumber field. Every requested page
// gets a group, empty when nothing matched, and each group keeps input order.
func GroupByPage(elements []element.Element, pages []int) map[int][]element.Element {
	groups := make(map[int][]element.Element, len(pages))
	for _, p := range pages {
		groups[p] = []element.Element{}
	}
	for _, el := range elements {
		if g, ok := groups[el.PageNumber]; ok {
			groups[el.PageNumber] = append(g, el)
		}
	}
	return groups
}

// GroupByIndex selects elements by position, for backends that emit exactly one
// element per page: page n is elements[n-1]. Pages past the end get an empty group.
func GroupByIndex(elements []element.Element, pages []int) map[int][]element.Element {
	groups := make(map[int][]element.Element, len(pages))
	for _, p := range pages {
		if p >= 1 && p <= len(elements) {
			groups[p] = []element.Element{elements[p-1]}
			continue
		}
		groups[p] = []element.Element{}
	}
	return groups
}

// ConsensusMetadata returns the fields of the first element whose key is not
// ignored and whose value is deeply equal on every element of the group.
func ConsensusMetadata(group []element.Element, ignored []string) element.Metadata {
	out := element.Metadata{}
	if len(group) == 0 {
		return out
	}
	skip := make(map[string]bool, len(ignored))
	for _, k := range ignored {
		skip[k] = true
	}

	for _, f := range group[0].Metadata {
		if skip[f.Key] {
			continue
		}
		if sharedByAll(group[1:], f) {
			out = append(out, f)
		}
	}
	return out
}

func sharedByAll(rest []element.Element, f element.Field) bool {
	for _, el := range rest {
		v, ok := el.Metadata.Get(f.Key)
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}
	return true
}
