// Package render rasterizes PDF pages with MuPDF and looks them up by page
// number across several documents.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

var ErrRenderSource = errors.New("render source cannot supply page data")

// SourceError reports that a rendered page could not be produced or is unusable.
type SourceError struct {
	Page int
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("render page %d: %v", e.Page, ErrRenderSource)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrRenderSource }

// Page is one rasterized page. Number is the 1-based position in the
// concatenation of all opened documents.
type Page struct {
	Number int
	Image  *image.RGBA
}

func (p Page) Width() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dx()
}

func (p Page) Height() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dy()
}

// Validate checks that the page has dimensions and a pixel buffer large enough
// to back them.
func (p Page) Validate() error {
	if p.Image == nil {
		return &SourceError{Page: p.Number, Err: errors.New("no pixel buffer")}
	}
	w, h := p.Width(), p.Height()
	if w <= 0 || h <= 0 {
		return &SourceError{Page: p.Number, Err: fmt.Errorf("empty dimensions %dx%d", w, h)}
	}
	if p.Image.Stride < 4*w || len(p.Image.Pix) < p.Image.Stride*(h-1)+4*w {
		return &SourceError{Page: p.Number, Err: fmt.Errorf("pixel buffer too short for %dx%d", w, h)}
	}
	return nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
