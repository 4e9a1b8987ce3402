package overlay

import (
	"fmt"

	"github.com/thywilljoshua/pdfloader/internal/element"
)

// Scale maps points from a layout frame into pixel space. Rotation and skew are
// not corrected; the layout frame and the raster are assumed to share orientation.
type Scale struct {
	X float64
	Y float64
}

// ScaleFor computes the factors that take c's layout frame onto a pixelW x pixelH
// raster.
func ScaleFor(pixelW, pixelH int, c element.Coordinates) (Scale, error) {
	if c.LayoutWidth <= 0 || c.LayoutHeight <= 0 {
		return Scale{}, fmt.Errorf("layout size %gx%g must be positive", c.LayoutWidth, c.LayoutHeight)
	}
	return Scale{
		X: float64(pixelW) / c.LayoutWidth,
		Y: float64(pixelH) / c.LayoutHeight,
	}, nil
}

func (s Scale) Apply(p element.Point) element.Point {
	return element.Point{X: p.X * s.X, Y: p.Y * s.Y}
}

func (s Scale) ApplyAll(points []element.Point) []element.Point {
	out := make([]element.Point, len(points))
	for i, p := range points {
		out[i] = s.Apply(p)
	}
	return out
}
