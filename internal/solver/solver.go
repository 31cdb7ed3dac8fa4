// Package solver finds move sequences that return a cube state to solved.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/analysis"
)

var (
	// ErrInvalidState is returned for states that are incomplete or do not
	// carry nine stickers of every color.
	ErrInvalidState = errors.New("solver: invalid cube state")

	// ErrNoSolution is returned when no solution was found within the
	// solver's limits.
	ErrNoSolution = errors.New("solver: no solution found")
)

// Solver produces a move sequence that solves a state. Implementations
// never mutate the state they are given.
type Solver interface {
	Solve(ctx context.Context, s *cubestate.State) ([]cubestate.Move, error)
}

// Check verifies that applying moves to s yields the solved state. s is
// not modified.
func Check(s *cubestate.State, moves []cubestate.Move) error {
	c := s.Clone()
	c.Apply(moves...)
	if !c.IsSolved() {
		return fmt.Errorf("%w: %d stickers still misplaced", ErrNoSolution, c.MisplacedCount())
	}
	return nil
}

func validate(s *cubestate.State) error {
	if s == nil {
		return fmt.Errorf("%w: nil state", ErrInvalidState)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return nil
}

// Undo solves a state whose scramble from solved is known, by inverting
// the scramble. Adjacent turns of the same face are merged.
type Undo struct {
	History []cubestate.Move
}

// Solve returns the inverted history after checking that it solves s.
func (u Undo) Solve(ctx context.Context, s *cubestate.State) ([]cubestate.Move, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.IsSolved() {
		return []cubestate.Move{}, nil
	}

	moves := analysis.OptimizeMoves(cubestate.InvertMoves(u.History))
	if err := Check(s, moves); err != nil {
		return nil, fmt.Errorf("history does not produce this state: %w", err)
	}
	return moves, nil
}
