// Package loader extracts elements from PDF files with one of two backends:
// plain (one element per page) and layout (categorized, positioned elements).
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thywilljoshua/pdfloader/internal/ai"
	"github.com/thywilljoshua/pdfloader/internal/element"
)

type Method string

const (
	MethodPlain  Method = "plain"
	MethodLayout Method = "layout"
)

type Strategy string

const (
	StrategyFast  Strategy = "fast"
	StrategyHiRes Strategy = "hi_res"
)

type Mode string

const (
	ModeElements Mode = "elements"
	ModePaged    Mode = "paged"
	ModeSingle   Mode = "single"
)

var (
	ErrNoInput       = errors.New("no PDF paths given")
	ErrUnknownMethod = errors.New("unknown loader method")
	ErrUnknownOption = errors.New("unknown loader option")
	ErrNoPartitioner = errors.New("partition via API requested without a partitioner")
)

type Options struct {
	Method   Method
	Strategy Strategy
	Mode     Mode
	// PartitionViaAPI hands layout extraction to Partitioner instead of
	// analysing the file locally.
	PartitionViaAPI bool
	Partitioner     ai.Partitioner
	PostProcessors  []PostProcessor
	Logger          zerolog.Logger
}

type Loader struct {
	opts Options
}

func New(opts Options) (*Loader, error) {
	if opts.Strategy == "" {
		opts.Strategy = StrategyFast
	}
	if opts.Mode == "" {
		opts.Mode = ModeElements
	}
	switch opts.Method {
	case MethodPlain, MethodLayout:
	default:
		return nil, fmt.Errorf("%q: %w", opts.Method, ErrUnknownMethod)
	}
	switch opts.Strategy {
	case StrategyFast, StrategyHiRes:
	default:
		return nil, fmt.Errorf("strategy %q: %w", opts.Strategy, ErrUnknownOption)
	}
	switch opts.Mode {
	case ModeElements, ModePaged, ModeSingle:
	default:
		return nil, fmt.Errorf("mode %q: %w", opts.Mode, ErrUnknownOption)
	}
	if opts.Partitioner == nil {
		if opts.PartitionViaAPI {
			return nil, ErrNoPartitioner
		}
		opts.Partitioner = ai.Noop{}
	}
	return &Loader{opts: opts}, nil
}

// Load reads every path in order and concatenates their elements.
func (l *Loader) Load(ctx context.Context, paths []string) ([]element.Element, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	var out []element.Element
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			els []element.Element
			err error
		)
		switch l.opts.Method {
		case MethodPlain:
			els, err = l.loadPlain(p)
		case MethodLayout:
			els, err = l.loadLayout(ctx, p)
		}
		if err != nil {
			return nil, fmt.Errorf("error while loading %s: %w", p, err)
		}
		l.opts.Logger.Debug().
			Str("path", p).
			Str("method", string(l.opts.Method)).
			Int("elements", len(els)).
			Msg("loaded document")
		out = append(out, els...)
	}
	return out, nil
}

func (l *Loader) clean(s string) string {
	return applyPostProcessors(s, l.opts.PostProcessors)
}
