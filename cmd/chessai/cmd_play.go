package main

import (
	"fmt"

	"github.com/cricklet/chessai/internal/rules"
	"github.com/cricklet/chessai/internal/selfplay"
	"github.com/spf13/cobra"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		fen        string
		whiteDepth int
		blackDepth int
		maxPlies   int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the engine play itself and print the game as PGN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("white-depth") {
				whiteDepth = a.config.Search.Depth
			}
			if !cmd.Flags().Changed("black-depth") {
				blackDepth = a.config.Search.Depth
			}

			searcher := a.config.NewSearcher(a.logger(cmd.ErrOrStderr()))
			white := selfplay.Player{Name: fmt.Sprintf("chessai depth %d", whiteDepth), Searcher: searcher, Depth: whiteDepth}
			black := selfplay.Player{Name: fmt.Sprintf("chessai depth %d", blackDepth), Searcher: searcher, Depth: blackDepth}

			opts := []selfplay.PlayOption{selfplay.WithMaxPlies{N: maxPlies}}
			if a.config.Log.Verbose {
				opts = append(opts, selfplay.WithLogger{Logger: a.logger(cmd.ErrOrStderr())})
			}

			record, err := selfplay.Play(fen, white, black, opts...)
			if err.HasError() {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, record.PGN)
			if record.Method != "" {
				fmt.Fprintf(out, "%v by %v after %d plies\n", record.Result, record.Method, record.Plies)
			} else {
				fmt.Fprintf(out, "%v after %d plies\n", record.Result, record.Plies)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fen, "fen", rules.StartingFEN, "starting position")
	cmd.Flags().IntVar(&whiteDepth, "white-depth", 3, "search depth for white (config default when unset)")
	cmd.Flags().IntVar(&blackDepth, "black-depth", 3, "search depth for black (config default when unset)")
	cmd.Flags().IntVar(&maxPlies, "max-plies", 400, "stop the game unfinished after this many plies")
	return cmd
}
