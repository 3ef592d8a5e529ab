package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cricklet/chessai/internal/config"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type app struct {
	configPath  string
	verbose     bool
	profilePath string

	config   config.Config
	profiler interface{ Stop() }
}

func (a *app) logger(w io.Writer) Logger {
	return FuncLogger(func(message string) {
		fmt.Fprint(w, message)
	})
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.config = config.Default()
	if a.configPath != "" {
		c, err := config.Load(a.configPath)
		if err.HasError() {
			return err
		}
		a.config = c
	}
	if a.verbose {
		a.config.Log.Verbose = true
	}

	if a.profilePath != "" {
		a.profiler = profile.Start(profile.ProfilePath(a.profilePath), profile.Quiet)
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.profiler != nil {
		a.profiler.Stop()
		a.profiler = nil
	}
}

// boardFromFlags sets up the position named by --fen and --moves.
func boardFromFlags(fen string, moves []string) (*rules.Board, Error) {
	board, err := rules.NewBoardFromFEN(fen)
	if err.HasError() {
		return nil, err
	}
	if err := board.PushUCI(moves...); err.HasError() {
		return nil, err
	}
	return board, NilError
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "chessai",
		Short: "Alpha-beta chess engine",
		Long: `chessai picks moves with a fixed-depth alpha-beta search over a
material, pawn structure and mobility evaluation.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every search iteration to stderr")
	rootCmd.PersistentFlags().StringVar(&a.profilePath, "profile", "", "write a CPU profile into this directory")

	rootCmd.AddCommand(
		newBestMoveCmd(a),
		newEvalCmd(a),
		newSuiteCmd(a),
		newPlayCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
