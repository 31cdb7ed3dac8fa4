package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/logging"
)

// DefaultMaxDepth bounds Search when MaxDepth is not set.
const DefaultMaxDepth = 7

// A face turn moves 20 stickers, so it can fix at most 20 misplaced ones.
const stickersPerTurn = 20

// checkEvery is how many nodes are expanded between context checks.
const checkEvery = 4096

// Search is an iterative-deepening A* solver over the 18 face turns. It
// finds the shortest solution up to MaxDepth moves. Search time grows by
// roughly 13x per extra move of depth, so it suits short scrambles.
type Search struct {
	MaxDepth int
	Logger   *log.Logger
}

// Solve searches for the shortest solution of s.
func (sr Search) Solve(ctx context.Context, s *cubestate.State) ([]cubestate.Move, error) {
	if err := validate(s); err != nil {
		return nil, err
	}

	maxDepth := sr.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger := logging.OrDiscard(sr.Logger)

	w := &walker{ctx: ctx, path: make([]cubestate.Move, 0, maxDepth)}
	start := time.Now()

	for bound := heuristic(s); bound <= maxDepth; bound++ {
		logger.Debug("searching", "bound", bound, "nodes", w.nodes)

		found, err := w.dfs(*s.Clone(), 0, bound, -1)
		if err != nil {
			return nil, err
		}
		if found {
			logger.Debug("solution found", "moves", len(w.path), "nodes", w.nodes, "elapsed", time.Since(start))
			out := make([]cubestate.Move, len(w.path))
			copy(out, w.path)
			return out, nil
		}
	}

	return nil, fmt.Errorf("%w within %d moves", ErrNoSolution, maxDepth)
}

// heuristic is a lower bound on the number of moves left.
func heuristic(s *cubestate.State) int {
	return (s.MisplacedCount() + stickersPerTurn - 1) / stickersPerTurn
}

type walker struct {
	ctx   context.Context
	path  []cubestate.Move
	nodes int
}

// dfs explores sequences of at most bound moves from st. prev is the face
// of the last move, or -1 at the root.
func (w *walker) dfs(st cubestate.State, depth, bound, prev int) (bool, error) {
	h := heuristic(&st)
	if h == 0 {
		return true, nil
	}
	if depth+h > bound {
		return false, nil
	}

	w.nodes++
	if w.nodes%checkEvery == 0 {
		if err := w.ctx.Err(); err != nil {
			return false, err
		}
	}

	for _, m := range cubestate.AllMoves {
		if redundant(int(m.Face), prev) {
			continue
		}

		next := st
		next.ApplyMove(m)
		w.path = append(w.path, m)

		found, err := w.dfs(next, depth+1, bound, int(m.Face))
		if err != nil || found {
			return found, err
		}
		w.path = w.path[:len(w.path)-1]
	}
	return false, nil
}

// redundant prunes a second turn of the same face and fixes the order of
// turns on opposite faces, which commute. Opposite faces differ only in
// the lowest bit (U/D, F/B, L/R).
func redundant(face, prev int) bool {
	if prev < 0 {
		return false
	}
	if face == prev {
		return true
	}
	return face == prev^1 && face < prev
}
