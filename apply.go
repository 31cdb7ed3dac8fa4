package cubestate

// ApplyMove applies a Move to the state. A move outside the 18 face turns
// is ignored.
func (s *State) ApplyMove(m Move) {
	p, ok := lookupTurn(m)
	if !ok {
		return
	}
	p.apply(&s.stickers)
}

// Apply applies a sequence of moves in order.
func (s *State) Apply(moves ...Move) {
	for _, m := range moves {
		s.ApplyMove(m)
	}
}

// ApplyNotation parses and applies a single move token such as "R'".
// An unrecognized token returns ErrInvalidNotation and leaves the state
// unchanged.
func (s *State) ApplyNotation(token string) error {
	m, err := ParseMove(token)
	if err != nil {
		return err
	}
	s.ApplyMove(m)
	return nil
}

// ApplySequence parses a whitespace-separated move sequence and applies
// it. Nothing is applied unless every token parses.
func (s *State) ApplySequence(seq string) error {
	moves, err := ParseMoves(seq)
	if err != nil {
		return err
	}
	s.Apply(moves...)
	return nil
}
