package main

import (
	"fmt"

	"github.com/cricklet/chessai/internal/evaluation"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		fen   string
		moves []string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the static evaluation of a position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := boardFromFlags(fen, moves)
			if err.HasError() {
				return err
			}

			b := evaluation.NewEvaluator(a.config.EvaluatorConfig()).Breakdown(board)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fen %v\n", board.FEN())
			fmt.Fprintf(out, "to move %v\n", board.SideToMove())
			if b.Terminal != evaluation.NotTerminal {
				fmt.Fprintf(out, "terminal %v\n", b.Terminal)
			} else {
				fmt.Fprintf(out, "material %d\n", b.Material)
				fmt.Fprintf(out, "pawn structure %d\n", b.PawnStructure)
				fmt.Fprintf(out, "mobility %d\n", b.Mobility)
				fmt.Fprintf(out, "white %d\n", b.Absolute)
			}
			fmt.Fprintf(out, "score %v\n", evaluation.ScoreString(b.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&fen, "fen", rules.StartingFEN, "position to evaluate")
	cmd.Flags().StringSliceVar(&moves, "moves", nil, "UCI moves to play from --fen first")
	return cmd
}
