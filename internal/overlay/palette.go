package overlay

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/thywilljoshua/pdfloader/internal/element"
)

// Kind is the drawing class of an element. Every category outside Title, Image
// and Table is drawn as KindText.
type Kind int

const (
	KindText Kind = iota
	KindTitle
	KindImage
	KindTable
)

// legendOrder is the order known kinds appear in a legend after KindText.
var legendOrder = []Kind{KindTitle, KindImage, KindTable}

func KindOf(category string) Kind {
	switch category {
	case element.Title:
		return KindTitle
	case element.Image:
		return KindImage
	case element.Table:
		return KindTable
	default:
		return KindText
	}
}

func (k Kind) Color() color.RGBA {
	switch k {
	case KindTitle:
		return colornames.Orchid
	case KindImage:
		return colornames.Forestgreen
	case KindTable:
		return colornames.Tomato
	default:
		return colornames.Deepskyblue
	}
}

func (k Kind) Label() string {
	switch k {
	case KindTitle:
		return element.Title
	case KindImage:
		return element.Image
	case KindTable:
		return element.Table
	default:
		return element.Text
	}
}

// Legend lists KindText first, then each known kind present among the elements
// that carry coordinates, in fixed order.
func Legend(elements []element.Element) []Kind {
	present := map[Kind]bool{}
	for _, el := range elements {
		if el.HasCoordinates() {
			present[KindOf(el.Category)] = true
		}
	}
	out := []Kind{KindText}
	for _, k := range legendOrder {
		if present[k] {
			out = append(out, k)
		}
	}
	return out
}
