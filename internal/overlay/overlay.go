// Package overlay draws the layout elements of one page onto its rendered image.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/thywilljoshua/pdfloader/internal/element"
	"github.com/thywilljoshua/pdfloader/internal/render"
)

const DefaultLineWidth = 1.5

type Renderer struct {
	LineWidth float64
	Logger    zerolog.Logger
}

func NewRenderer(logger zerolog.Logger) *Renderer {
	return &Renderer{LineWidth: DefaultLineWidth, Logger: logger}
}

// Render returns a copy of the page image with one outlined polygon per element
// that has coordinates, drawn in input order, and a legend in the upper-right
// corner. The page and the elements are not modified.
func (r *Renderer) Render(page render.Page, elements []element.Element) (*image.RGBA, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	w, h := page.Width(), page.Height()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), page.Image, page.Image.Bounds().Min, draw.Src)

	lw := r.LineWidth
	if lw <= 0 {
		lw = DefaultLineWidth
	}

	z := vector.NewRasterizer(w, h)
	var drawn, skipped int
	var placed []element.Element
	for i, el := range elements {
		if !el.HasCoordinates() {
			skipped++
			continue
		}
		s, err := ScaleFor(w, h, *el.Coordinates)
		if err != nil {
			r.Logger.Warn().Err(err).Int("page", page.Number).Int("element", i).Msg("skipping element")
			skipped++
			continue
		}
		pts := s.ApplyAll(el.Coordinates.Points)
		strokePolygon(z, dst, pts, lw, KindOf(el.Category).Color())
		placed = append(placed, el)
		drawn++
	}
	drawLegend(dst, Legend(placed))

	r.Logger.Debug().
		Int("page", page.Number).
		Int("drawn", drawn).
		Int("skipped", skipped).
		Msg("rendered overlay")
	return dst, nil
}

func strokePolygon(z *vector.Rasterizer, dst *image.RGBA, pts []element.Point, width float64, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	b := dst.Bounds()
	src := image.NewUniform(c)
	half := width / 2
	edges := len(pts)
	if edges == 2 {
		edges = 1
	}
	for i := 0; i < edges; i++ {
		// Points off the page are kept as is; the rasterizer clips to its bounds.
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		l := math.Hypot(dx, dy)
		if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
			continue
		}
		// Unit direction and normal, scaled to half the line width. Extending each
		// edge along its direction closes the corners.
		ux, uy := dx/l*half, dy/l*half
		nx, ny := -uy, ux

		z.Reset(b.Dx(), b.Dy())
		z.DrawOp = draw.Over
		z.MoveTo(f32(p0.X-ux+nx), f32(p0.Y-uy+ny))
		z.LineTo(f32(p1.X+ux+nx), f32(p1.Y+uy+ny))
		z.LineTo(f32(p1.X+ux-nx), f32(p1.Y+uy-ny))
		z.LineTo(f32(p0.X-ux-nx), f32(p0.Y-uy-ny))
		z.ClosePath()
		z.Draw(dst, b, src, image.Point{})
	}
}

func f32(v float64) float32 { return float32(v) }

const (
	legendMargin  = 8
	legendPadding = 6
	legendRow     = 16
	legendSwatch  = 10
)

var (
	legendBackground = color.RGBA{R: 230, G: 230, B: 230, A: 230} // 90% white, premultiplied
	legendBorder     = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

func drawLegend(dst *image.RGBA, kinds []Kind) {
	face := basicfont.Face7x13
	labelW := 0
	for _, k := range kinds {
		if n := font.MeasureString(face, k.Label()).Ceil(); n > labelW {
			labelW = n
		}
	}
	boxW := legendPadding*3 + legendSwatch + labelW
	boxH := legendPadding*2 + legendRow*len(kinds)
	b := dst.Bounds()
	box := image.Rect(b.Max.X-legendMargin-boxW, b.Min.Y+legendMargin, b.Max.X-legendMargin, b.Min.Y+legendMargin+boxH)

	draw.Draw(dst, box, image.NewUniform(legendBackground), image.Point{}, draw.Over)
	outline(dst, box, legendBorder)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.Black), Face: face}
	for i, k := range kinds {
		top := box.Min.Y + legendPadding + i*legendRow
		sw := image.Rect(box.Min.X+legendPadding, top+3, box.Min.X+legendPadding+legendSwatch, top+3+legendSwatch)
		draw.Draw(dst, sw, image.NewUniform(k.Color()), image.Point{}, draw.Src)
		d.Dot = fixed.P(sw.Max.X+legendPadding, top+legendRow-3)
		d.DrawString(k.Label())
	}
}

func outline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	src := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}
