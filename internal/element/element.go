// Package element holds the in-memory shape shared by the extraction backends,
// the page aggregator and the overlay renderer.
package element

// Categories produced by the loaders. Anything not listed here is still a valid
// category; the renderer treats unknown names like Text.
const (
	Title             = "Title"
	Image             = "Image"
	Table             = "Table"
	Text              = "Text"
	NarrativeText     = "NarrativeText"
	ListItem          = "ListItem"
	UncategorizedText = "UncategorizedText"
	Header            = "Header"
	Footer            = "Footer"
)

// Coordinate systems reported in Coordinates.System.
const (
	PointSpace     = "PointSpace"
	Normalized1000 = "Normalized1000"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Coordinates locate an element inside a layout frame of LayoutWidth x LayoutHeight.
// Points use a top-left origin.
type Coordinates struct {
	Points       []Point `json:"points"`
	LayoutWidth  float64 `json:"layout_width"`
	LayoutHeight float64 `json:"layout_height"`
	System       string  `json:"system,omitempty"`
}

// Element is one extracted content unit. PageNumber is 1-based.
type Element struct {
	PageNumber  int          `json:"page_number"`
	Category    string       `json:"category"`
	Content     string       `json:"content"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Metadata    Metadata     `json:"metadata"`
}

// HasCoordinates reports whether the element can be placed on a rendered page.
func (e Element) HasCoordinates() bool {
	return e.Coordinates != nil && len(e.Coordinates.Points) > 0
}

// Rect builds the four corner points of an axis-aligned box, clockwise from the
// top-left corner.
func Rect(x0, y0, x1, y1 float64) []Point {
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
