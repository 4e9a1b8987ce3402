package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdfloader/internal/config"
	"github.com/thywilljoshua/pdfloader/internal/loader"
	"github.com/thywilljoshua/pdfloader/internal/pages"
	"github.com/thywilljoshua/pdfloader/internal/printer"
)

func printCmd(a *app) *cobra.Command {
	var lf loaderFlags
	var pageExpr string
	var start, end int
	var showMetadata bool
	var ignoreKeys []string

	cmd := &cobra.Command{
		Use:   "print <pdf>...",
		Short: "Print the extracted elements of the selected pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.setup(func(cfg *config.Config) {
				lf.apply(cmd, cfg)
				pc := &cfg.Print
				if cmd.Flags().Changed("pages") {
					pc.Pages = pageExpr
				}
				if cmd.Flags().Changed("start") {
					pc.StartPage = &start
				}
				if cmd.Flags().Changed("end") {
					pc.EndPage = &end
				}
				if (cmd.Flags().Changed("start") || cmd.Flags().Changed("end")) && !cmd.Flags().Changed("pages") {
					pc.Pages = nil
				}
				if cmd.Flags().Changed("show-metadata") {
					pc.ShowMetadata = showMetadata
				}
				if cmd.Flags().Changed("ignore-key") {
					pc.IgnoreKeys = ignoreKeys
				}
			})
			if err != nil {
				return err
			}

			// Resolve the selection first so a bad one fails before any extraction.
			sel, err := a.cfg.Print.Selection()
			if err != nil {
				return err
			}
			want, err := pages.Resolve(sel)
			if err != nil {
				return err
			}

			els, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}

			p := &printer.Printer{
				Out:          cmd.OutOrStdout(),
				ShowMetadata: a.cfg.Print.ShowMetadata,
				IgnoredKeys:  a.cfg.Print.IgnoreKeys,
			}
			if loader.Method(a.cfg.Loader.Method) == loader.MethodPlain {
				p.PrintPlain(els, want)
			} else {
				p.PrintLayout(els, want)
			}
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&pageExpr, "pages", "p", "", `pages to print, e.g. "4", "1,10,4" or "2-6"`)
	cmd.Flags().IntVar(&start, "start", 0, "first page of a range (with --end)")
	cmd.Flags().IntVar(&end, "end", 0, "last page of a range (with --start)")
	cmd.Flags().BoolVar(&showMetadata, "show-metadata", false, "print page level and first element metadata")
	cmd.Flags().StringSliceVar(&ignoreKeys, "ignore-key", nil, "metadata keys left out of page level metadata (default coordinates,bbox)")
	return cmd
}
