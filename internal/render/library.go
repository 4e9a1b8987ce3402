package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"
)

// DefaultDPI is twice the PDF point resolution.
const DefaultDPI = 144

// Rasterizer is the subset of *fitz.Document the library needs.
type Rasterizer interface {
	NumPage() int
	ImageDPI(pageNumber int, dpi float64) (*image.RGBA, error)
	Close() error
}

// Opener opens one document for rasterization.
type Opener func(path string) (Rasterizer, error)

func openFitz(path string) (Rasterizer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Library holds several open documents whose pages are addressed as one
// concatenated sequence, in the order the paths were given.
type Library struct {
	docs   []Rasterizer
	paths  []string
	dpi    float64
	logger zerolog.Logger
}

// Open opens every path with MuPDF.
func Open(paths []string, dpi float64, logger zerolog.Logger) (*Library, error) {
	return OpenWith(openFitz, paths, dpi, logger)
}

// OpenWith opens every path with open. On failure the documents opened so far are
// closed.
func OpenWith(open Opener, paths []string, dpi float64, logger zerolog.Logger) (*Library, error) {
	if len(paths) == 0 {
		return nil, errors.New("no documents to render")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	lib := &Library{paths: paths, dpi: dpi, logger: logger}
	for _, p := range paths {
		doc, err := open(p)
		if err != nil {
			lib.Close()
			return nil, fmt.Errorf("open %s for rendering: %w", p, err)
		}
		lib.docs = append(lib.docs, doc)
		logger.Debug().Str("path", p).Int("pages", doc.NumPage()).Msg("opened document for rendering")
	}
	return lib, nil
}

// NumPage is the total page count across all documents.
func (l *Library) NumPage() int {
	n := 0
	for _, d := range l.docs {
		n += d.NumPage()
	}
	return n
}

// Page rasterizes the page at 1-based position number in the concatenation.
func (l *Library) Page(number int) (Page, error) {
	if number < 1 {
		return Page{}, &SourceError{Page: number, Err: fmt.Errorf("page number must be >= 1")}
	}
	index := number - 1
	for i, d := range l.docs {
		n := d.NumPage()
		if index >= n {
			index -= n
			continue
		}
		img, err := d.ImageDPI(index, l.dpi)
		if err != nil {
			return Page{}, &SourceError{Page: number, Err: fmt.Errorf("%s page %d: %w", l.paths[i], index+1, err)}
		}
		page := Page{Number: number, Image: img}
		if err := page.Validate(); err != nil {
			return Page{}, err
		}
		l.logger.Debug().
			Int("page", number).
			Str("path", l.paths[i]).
			Int("width", page.Width()).
			Int("height", page.Height()).
			Msg("rendered page")
		return page, nil
	}
	return Page{}, &SourceError{Page: number, Err: fmt.Errorf("only %d pages available", l.NumPage())}
}

// Close closes every open document.
func (l *Library) Close() error {
	var errs []error
	for _, d := range l.docs {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.docs = nil
	return errors.Join(errs...)
}
