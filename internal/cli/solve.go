package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/analysis"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/solver"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var solveCmd = &cobra.Command{
	Use:   "solve [state]",
	Short: "Find a move sequence that solves a state",
	Long: `Solve a fully entered, color-balanced cube state.

By default a bounded iterative-deepening search looks for the shortest
solution within --depth moves. When the scramble is known, --history
undoes it instead, which works for any length.

Usage:
  cubestate solve <state>
  cubestate solve --id <cube-id> --save
  cubestate solve <state> --history "R U R' U'"
  cubestate solve <state> --depth 9 --timeout 2m`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

var (
	solveID      string
	solveDepth   int
	solveTimeout time.Duration
	solveHistory string
	solveSave    bool
	solveSpoken  bool
)

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveID, "id", "", "Solve a saved cube")
	solveCmd.Flags().IntVar(&solveDepth, "depth", 0, "Maximum solution length (default from config)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Give up after this long (default from config)")
	solveCmd.Flags().StringVar(&solveHistory, "history", "", "Moves that scrambled the cube from solved")
	solveCmd.Flags().BoolVar(&solveSave, "save", false, "Record the solution in the database")
	solveCmd.Flags().BoolVar(&solveSpoken, "spoken", false, "Also print the moves as spoken directions")
}

func runSolve(cmd *cobra.Command, args []string) error {
	var (
		db     *storage.DB
		cubeID string
		state  *cubestate.State
	)

	if solveSave || solveID != "" {
		var err error
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()
	}

	switch {
	case solveID != "":
		cube, err := loadCube(db, solveID)
		if err != nil {
			return err
		}
		cubeID, state = cube.CubeID, cube.State
	case len(args) == 1:
		s, err := parseState(args[0])
		if err != nil {
			return err
		}
		state = s
	default:
		return errors.New("solve needs a state argument or --id")
	}

	sv, name, err := newSolver()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	timeout := solveTimeout
	if timeout == 0 {
		timeout = cfg.Solver.Timeout()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	moves, err := sv.Solve(ctx, state)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s solver: %w", name, err)
	}
	logger.Info("solution found", "solver", name, "moves", len(moves), "elapsed", elapsed)

	out := cmd.OutOrStdout()
	if len(moves) == 0 {
		fmt.Fprintln(out, "Already solved.")
	} else {
		fmt.Fprintf(out, "Solution (%d moves): %s\n", len(moves), moveStyle.Render(cubestate.FormatMoves(moves)))
		report := analysis.Analyze(moves)
		fmt.Fprintf(out, "Length: %d HTM, %d QTM\n", report.TotalMoves, report.QuarterTurns)
		if solveSpoken {
			fmt.Fprintf(out, "Say: %s\n", notation.SpokenSequence(moves))
		}
		for _, ms := range cubestate.Milestones(state, moves) {
			fmt.Fprintf(out, "  move %2d: %s\n", ms.Move, ms.Phase.DisplayName())
		}
	}
	fmt.Fprintf(out, "Time: %s\n", elapsed.Round(time.Millisecond))

	if solveSave {
		if cubeID == "" {
			cubeID, err = storage.NewCubeRepository(db).Save("", state)
			if err != nil {
				return err
			}
		}
		id, err := storage.NewSolveRepository(db).Create(cubeID, state, moves, name, elapsed)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved solve %s for cube %s\n", id, cubeID)
	}

	return nil
}

// newSolver picks the solver from the flags and returns its stored name.
func newSolver() (solver.Solver, string, error) {
	if solveHistory != "" {
		history, err := cubestate.ParseMoves(solveHistory)
		if err != nil {
			return nil, "", fmt.Errorf("invalid --history: %w", err)
		}
		return solver.Undo{History: history}, "undo", nil
	}

	depth := solveDepth
	if depth == 0 {
		depth = cfg.Solver.MaxDepth
	}
	return solver.Search{MaxDepth: depth, Logger: logger}, "search", nil
}
