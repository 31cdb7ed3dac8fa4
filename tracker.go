package cubestate

// Tracker follows a state through a sequence of moves and reports each
// layer-by-layer phase the first time it is reached.
type Tracker struct {
	state   *State
	moves   []Move
	highest Phase // monotonic, never goes backwards
	onPhase func(phase Phase, move int)
}

// NewTracker starts tracking from a copy of start.
func NewTracker(start *State) *Tracker {
	t := &Tracker{}
	t.Reset(start)
	return t
}

// OnPhase sets a callback fired when a new highest phase is reached.
// move is the number of moves applied so far.
func (t *Tracker) OnPhase(fn func(phase Phase, move int)) {
	t.onPhase = fn
}

// Reset restarts tracking from a copy of start.
func (t *Tracker) Reset(start *State) {
	t.state = start.Clone()
	t.moves = nil
	t.highest = t.state.Phase()
}

// ApplyMove applies a move and checks for a phase transition.
func (t *Tracker) ApplyMove(m Move) {
	t.state.ApplyMove(m)
	t.moves = append(t.moves, m)

	// Phases are ordered, so only a new high is reported.
	if current := t.state.Phase(); current > t.highest {
		t.highest = current
		if t.onPhase != nil {
			t.onPhase(current, len(t.moves))
		}
	}
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []Move) {
	for _, m := range moves {
		t.ApplyMove(m)
	}
}

// CurrentPhase returns the phase of the current state. It may go
// backwards while solving.
func (t *Tracker) CurrentPhase() Phase {
	return t.state.Phase()
}

// HighestPhase returns the highest phase reached.
func (t *Tracker) HighestPhase() Phase {
	return t.highest
}

// Moves returns a copy of the moves applied since the last reset.
func (t *Tracker) Moves() []Move {
	out := make([]Move, len(t.moves))
	copy(out, t.moves)
	return out
}

// IsSolved returns true if the tracked state is solved.
func (t *Tracker) IsSolved() bool {
	return t.state.IsSolved()
}

// State returns a copy of the tracked state.
func (t *Tracker) State() *State {
	return t.state.Clone()
}

// Milestone is a phase reached while applying a sequence.
type Milestone struct {
	Phase Phase
	Move  int // moves applied when the phase was reached
}

// Milestones applies moves to a copy of start and lists every new
// highest phase in the order it was reached.
func Milestones(start *State, moves []Move) []Milestone {
	var out []Milestone
	t := NewTracker(start)
	t.OnPhase(func(p Phase, move int) {
		out = append(out, Milestone{Phase: p, Move: move})
	})
	t.ApplyMoves(moves)
	return out
}
