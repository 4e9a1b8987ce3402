package main

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thywilljoshua/pdfloader/internal/ai"
	"github.com/thywilljoshua/pdfloader/internal/config"
	"github.com/thywilljoshua/pdfloader/internal/element"
	"github.com/thywilljoshua/pdfloader/internal/loader"
	"github.com/thywilljoshua/pdfloader/internal/logging"
)

// app carries state shared by the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log zerolog.Logger
}

// loaderFlags are the extraction flags common to print and render.
type loaderFlags struct {
	method   string
	strategy string
	mode     string
	api      bool
	clean    []string
}

func (f *loaderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.method, "method", "", "extraction backend: plain|layout")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "layout strategy: fast|hi_res")
	cmd.Flags().StringVar(&f.mode, "mode", "", "layout output: elements|paged|single")
	cmd.Flags().BoolVar(&f.api, "api", false, "partition layout via the Gemini API (needs GOOGLE_API_KEY)")
	cmd.Flags().StringSliceVar(&f.clean, "clean", nil, "post processors: whitespace,dashes,bullets,unicode")
}

// apply copies the flags the user set over the loaded configuration.
func (f *loaderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("method") {
		cfg.Loader.Method = f.method
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Loader.Strategy = f.strategy
	}
	if cmd.Flags().Changed("mode") {
		cfg.Loader.Mode = f.mode
	}
	if cmd.Flags().Changed("api") {
		cfg.Loader.PartitionViaAPI = f.api
	}
	if cmd.Flags().Changed("clean") {
		cfg.Loader.PostProcessors = f.clean
	}
}

// setup loads the configuration, lets override adjust it, validates the result
// and builds the logger.
func (a *app) setup(override func(*config.Config)) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return nil
}

// load runs the configured loader over paths.
func (a *app) load(ctx context.Context, paths []string) ([]element.Element, error) {
	lc := a.cfg.Loader
	pps, err := loader.PostProcessorsByName(lc.PostProcessors)
	if err != nil {
		return nil, err
	}
	opts := loader.Options{
		Method:          loader.Method(lc.Method),
		Strategy:        loader.Strategy(lc.Strategy),
		Mode:            loader.Mode(lc.Mode),
		PartitionViaAPI: lc.PartitionViaAPI && loader.Method(lc.Method) == loader.MethodLayout,
		Partitioner:     ai.Noop{},
		PostProcessors:  pps,
		Logger:          a.log,
	}
	if opts.PartitionViaAPI {
		g, err := ai.NewGemini(ctx, a.cfg.Gemini.APIKey, a.cfg.Gemini.Model, a.log)
		if err != nil {
			return nil, err
		}
		opts.Partitioner = g
	}
	l, err := loader.New(opts)
	if err != nil {
		return nil, err
	}

	if opts.PartitionViaAPI {
		stop := startSpinner(" partitioning via Gemini...")
		defer stop()
	}
	els, err := l.Load(ctx, paths)
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("documents", len(paths)).Int("elements", len(els)).Msg("loaded")
	return els, nil
}

// startSpinner shows progress on stderr when it is a terminal.
func startSpinner(suffix string) (stop func()) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
