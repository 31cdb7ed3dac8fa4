package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/playback"
	"github.com/SeamusWaldron/cubestate/internal/solver"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

// loadSession resolves what to play back. With a cube ID the start state
// comes from the database and args may hold the moves; otherwise args are
// <state> [moves]. Missing moves fall back to the cube's latest solve,
// played from its recorded start, then to a fresh search.
func loadSession(ctx context.Context, cubeID string, args []string) (*playback.Session, string, error) {
	var (
		start *cubestate.State
		seq   string
		title string
		moves []cubestate.Move
	)

	switch {
	case cubeID != "":
		db, err := openDB()
		if err != nil {
			return nil, "", err
		}
		defer db.Close()

		cube, err := loadCube(db, cubeID)
		if err != nil {
			return nil, "", err
		}
		start, title = cube.State, cube.Name
		if len(args) > 0 {
			seq = args[0]
		} else {
			last, err := storage.NewSolveRepository(db).GetLastByCube(cubeID)
			if err != nil {
				return nil, "", err
			}
			// A solve belongs to the state it was recorded from, which
			// differs from the cube once it has been edited.
			if last != nil {
				start, moves = last.Start, last.Moves
			}
		}
	case len(args) > 0:
		s, err := parseState(args[0])
		if err != nil {
			return nil, "", err
		}
		start = s
		if len(args) > 1 {
			seq = args[1]
		}
	default:
		return nil, "", errors.New("need a state argument or --id")
	}

	if title == "" {
		title = "Solution"
	}

	if seq != "" {
		session, err := playback.ParseSession(start, seq)
		return session, title, err
	}

	if moves == nil {
		if err := start.Validate(); err != nil {
			return nil, "", err
		}
		if timeout := cfg.Solver.Timeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		found, err := solver.Search{MaxDepth: cfg.Solver.MaxDepth, Logger: logger}.Solve(ctx, start)
		if err != nil {
			return nil, "", fmt.Errorf("no moves given and search failed: %w", err)
		}
		logger.Debug("playing search result", "moves", len(found))
		moves = found
	}

	return playback.NewSession(start, moves), title, nil
}
