// Package playback steps through a move sequence on a private copy of a
// cube state, for replaying solutions one move at a time.
package playback

import (
	"fmt"

	"github.com/SeamusWaldron/cubestate"
)

// Step is one move of a replayed sequence.
type Step struct {
	Number      int    `json:"number"` // 1-based
	Notation    string `json:"move"`
	Description string `json:"description"`

	Move cubestate.Move `json:"-"`
}

// Session replays moves over a deep copy of the starting state. The caller
// keeps ownership of the state passed to NewSession; nothing the session
// does is visible through it.
//
// A Session is not safe for concurrent use. Wrap it in a Player to drive it
// from several goroutines.
type Session struct {
	origin *cubestate.State
	state  *cubestate.State
	steps  []Step
	pos    int // number of moves applied
}

// NewSession creates a session positioned before the first move.
func NewSession(start *cubestate.State, moves []cubestate.Move) *Session {
	steps := make([]Step, len(moves))
	for i, m := range moves {
		steps[i] = Step{
			Number:      i + 1,
			Notation:    m.Notation(),
			Description: m.Description(),
			Move:        m,
		}
	}
	return &Session{
		origin: start.Clone(),
		state:  start.Clone(),
		steps:  steps,
	}
}

// ParseSession parses a move sequence and creates a session for it.
func ParseSession(start *cubestate.State, seq string) (*Session, error) {
	moves, err := cubestate.ParseMoves(seq)
	if err != nil {
		return nil, err
	}
	return NewSession(start, moves), nil
}

// Next applies the next move. It returns false when every move has been
// applied.
func (s *Session) Next() (Step, bool) {
	if s.pos >= len(s.steps) {
		return Step{}, false
	}
	step := s.steps[s.pos]
	s.state.ApplyMove(step.Move)
	s.pos++
	return step, true
}

// Prev undoes the last applied move. It returns false at the start.
func (s *Session) Prev() (Step, bool) {
	if s.pos == 0 {
		return Step{}, false
	}
	s.pos--
	step := s.steps[s.pos]
	// Notations come from valid moves, so the reversed token always parses.
	_ = s.state.ApplyNotation(cubestate.ReverseMove(step.Notation))
	return step, true
}

// JumpTo positions the session after n moves by replaying from the
// starting state.
func (s *Session) JumpTo(n int) error {
	if n < 0 || n > len(s.steps) {
		return fmt.Errorf("%w: %d not in 0..%d", ErrOutOfRange, n, len(s.steps))
	}
	if n == s.pos {
		return nil
	}
	s.state = s.origin.Clone()
	for i := 0; i < n; i++ {
		s.state.ApplyMove(s.steps[i].Move)
	}
	s.pos = n
	return nil
}

// Reset returns to the starting state.
func (s *Session) Reset() {
	s.state = s.origin.Clone()
	s.pos = 0
}

// Position returns the number of moves applied.
func (s *Session) Position() int { return s.pos }

// Len returns the number of moves in the sequence.
func (s *Session) Len() int { return len(s.steps) }

// Done reports whether every move has been applied.
func (s *Session) Done() bool { return s.pos >= len(s.steps) }

// Progress returns the share of moves applied, from 0 to 100.
func (s *Session) Progress() float64 {
	if len(s.steps) == 0 {
		return 0
	}
	return float64(s.pos) / float64(len(s.steps)) * 100
}

// Current returns the most recently applied step.
func (s *Session) Current() (Step, bool) {
	if s.pos == 0 {
		return Step{}, false
	}
	return s.steps[s.pos-1], true
}

// Steps returns a copy of every step.
func (s *Session) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Moves returns the replayed moves.
func (s *Session) Moves() []cubestate.Move {
	out := make([]cubestate.Move, len(s.steps))
	for i, st := range s.steps {
		out[i] = st.Move
	}
	return out
}

// State returns a copy of the current state.
func (s *Session) State() *cubestate.State {
	return s.state.Clone()
}

// Origin returns a copy of the starting state.
func (s *Session) Origin() *cubestate.State {
	return s.origin.Clone()
}

// Snapshot describes the current position for a renderer.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Position:  s.pos,
		Total:     len(s.steps),
		Progress:  s.Progress(),
		Completed: s.Done(),
		State:     s.state.SolverString(),
		Faces:     faceColors(s.state),
		Phase:     s.state.Phase().String(),
	}
	if step, ok := s.Current(); ok {
		snap.Move = step.Notation
		snap.Description = step.Description
	}
	return snap
}
