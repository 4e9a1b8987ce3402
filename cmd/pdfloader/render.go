package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdfloader/internal/collate"
	"github.com/thywilljoshua/pdfloader/internal/config"
	"github.com/thywilljoshua/pdfloader/internal/loader"
	"github.com/thywilljoshua/pdfloader/internal/overlay"
	"github.com/thywilljoshua/pdfloader/internal/printer"
	"github.com/thywilljoshua/pdfloader/internal/render"
)

func renderCmd(a *app) *cobra.Command {
	var lf loaderFlags
	var page int
	var out string
	var dpi float64
	var printText bool

	cmd := &cobra.Command{
		Use:   "render <pdf>...",
		Short: "Draw the layout elements of one page onto its image and save it as PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be >= 1, got %d", page)
			}
			err := a.setup(func(cfg *config.Config) {
				lf.apply(cmd, cfg)
				// Only the layout backend in element mode carries coordinates.
				cfg.Loader.Method = string(loader.MethodLayout)
				cfg.Loader.Mode = string(loader.ModeElements)
				if cmd.Flags().Changed("dpi") {
					cfg.Render.DPI = dpi
				}
			})
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("page-%d.png", page)
			}

			els, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			group := collate.GroupByPage(els, []int{page})[page]
			if len(group) == 0 {
				a.log.Warn().Int("page", page).Msg("no elements on page; rendering without boxes")
			}

			lib, err := render.Open(args, a.cfg.Render.DPI, a.log)
			if err != nil {
				return err
			}
			defer lib.Close()

			src, err := lib.Page(page)
			if err != nil {
				return err
			}
			r := &overlay.Renderer{LineWidth: a.cfg.Render.LineWidth, Logger: a.log}
			img, err := r.Render(src, group)
			if err != nil {
				return err
			}
			if err := render.WritePNG(out, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🖼️  Wrote %s (%d elements on page %d)\n", out, len(group), page)

			if printText {
				p := &printer.Printer{
					Out:          cmd.OutOrStdout(),
					ShowMetadata: a.cfg.Print.ShowMetadata,
					IgnoredKeys:  a.cfg.Print.IgnoreKeys,
				}
				p.PrintLayout(els, []int{page})
			}
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().IntVar(&page, "page", 0, "1-based page number across the given documents")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default page-N.png)")
	cmd.Flags().Float64Var(&dpi, "dpi", render.DefaultDPI, "rasterization resolution")
	cmd.Flags().BoolVar(&printText, "print-text", false, "also print the page's elements")
	_ = cmd.MarkFlagRequired("page")
	return cmd
}
