package main

import (
	"fmt"

	"github.com/cricklet/chessai/internal/evaluation"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newBestMoveCmd(a *app) *cobra.Command {
	var (
		fen   string
		moves []string
		depth int
		top   int
		dump  bool
	)

	cmd := &cobra.Command{
		Use:   "bestmove",
		Short: "Search a position and print the best move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := boardFromFlags(fen, moves)
			if err.HasError() {
				return err
			}
			if !cmd.Flags().Changed("depth") {
				depth = a.config.Search.Depth
			}

			searcher := a.config.NewSearcher(a.logger(cmd.ErrOrStderr()))
			result, err := searcher.FindBestMove(board, depth)
			if err.HasError() {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Move.HasValue() {
				move := result.Move.Value()
				fmt.Fprintf(out, "bestmove %v (%v)\n", move, board.SAN(move))
			} else {
				fmt.Fprintln(out, "bestmove (none)")
			}
			fmt.Fprintf(out, "score %v\n", evaluation.ScoreString(result.Score))
			fmt.Fprintf(out, "depth %d, %v\n", result.Depth, result.Stats)

			if top > 0 {
				for _, m := range result.TopMoves(top) {
					fmt.Fprintf(out, "  %-6v %-8v %v\n", m.Move, board.SAN(m.Move), evaluation.ScoreString(m.Score))
				}
			}
			if result.DebugSearchTree != nil {
				fmt.Fprint(out, result.DebugSearchTree.DebugString(result.Depth+1))
			}
			if dump {
				spew.Fdump(out, result.Stats)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fen, "fen", rules.StartingFEN, "position to search")
	cmd.Flags().StringSliceVar(&moves, "moves", nil, "UCI moves to play from --fen first")
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "maximum search depth in plies (config default when unset)")
	cmd.Flags().IntVar(&top, "top", 0, "also print the n best root moves")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the search statistics")
	return cmd
}
