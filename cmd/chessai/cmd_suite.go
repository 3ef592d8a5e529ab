package main

import (
	"fmt"
	"os"
	"time"

	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/suite"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSuiteCmd(a *app) *cobra.Command {
	var (
		depth   int
		showAll bool
	)

	cmd := &cobra.Command{
		Use:   "suite <file.epd>",
		Short: "Run an EPD test suite with bm and am operations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := suite.LoadEpd(args[0])
			if err.HasError() {
				return err
			}
			if !cmd.Flags().Changed("depth") {
				depth = a.config.Search.Depth
			}

			progress := SilentProgressBar()
			if term.IsTerminal(int(os.Stderr.Fd())) {
				progress = CreateProgressBar(os.Stderr, len(cases), args[0])
			}

			searcher := a.config.NewSearcher(a.logger(cmd.ErrOrStderr()))
			report, err := suite.Run(cases, searcher, depth, progress)
			if err.HasError() {
				return err
			}

			out := cmd.OutOrStdout()
			for _, result := range report.Results {
				if result.Passed && !showAll {
					continue
				}
				fmt.Fprintln(out, result)
			}
			fmt.Fprintf(out, "%v, %v nodes, %v\n",
				report,
				humanize.Comma(int64(report.Nodes)),
				report.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "search depth for every case (config default when unset)")
	cmd.Flags().BoolVar(&showAll, "all", false, "print passing cases too")
	return cmd
}
