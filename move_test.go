package cubestate

import (
	"errors"
	"testing"
)

func TestSingleMoveBreaksSolved(t *testing.T) {
	for _, m := range AllMoves {
		s := NewSolved()
		s.ApplyMove(m)
		if s.IsSolved() {
			t.Errorf("cube should not be solved after %v", m)
		}
		if !s.IsValid() {
			t.Errorf("%v broke color balance", m)
		}
	}
}

func TestQuarterTurnOrderFour(t *testing.T) {
	for _, f := range Faces {
		for _, turn := range []Turn{CW, CCW} {
			s := NewSolved()
			s.Apply(SexyMove...) // start away from solved
			before := s.Clone()

			m := Move{Face: f, Turn: turn}
			s.ApplyMove(m)
			if s.Equal(before) {
				t.Errorf("%v left the state unchanged", m)
			}
			s.Apply(m, m, m)
			if !s.Equal(before) {
				t.Errorf("%v x 4 should return to the starting state", m)
				t.Log(s.String())
			}
		}
	}
}

func TestDoubleTurnTwiceIsFourQuarterTurns(t *testing.T) {
	for _, f := range Faces {
		a := NewSolved()
		a.Apply(SexyMove...)
		b := a.Clone()

		half := Move{Face: f, Turn: Double}
		quarter := Move{Face: f, Turn: CW}
		a.Apply(half, half)
		b.Apply(quarter, quarter, quarter, quarter)
		if !a.Equal(b) {
			t.Errorf("%v %v differs from four %v", half, half, quarter)
		}

		c := NewSolved()
		c.Apply(half)
		d := NewSolved()
		d.Apply(quarter, quarter)
		if !c.Equal(d) {
			t.Errorf("%v differs from %v %v", half, quarter, quarter)
		}
	}
}

func TestCounterClockwiseIsThreeClockwise(t *testing.T) {
	for _, f := range Faces {
		a := NewSolved()
		a.Apply(Move{Face: f, Turn: CCW})
		b := NewSolved()
		cw := Move{Face: f, Turn: CW}
		b.Apply(cw, cw, cw)
		if !a.Equal(b) {
			t.Errorf("%s' differs from %s %s %s", f, f, f, f)
		}
	}
}

func TestMoveThenReverseRestores(t *testing.T) {
	for _, m := range AllMoves {
		s := NewSolved()
		if err := s.ApplyNotation(m.Notation()); err != nil {
			t.Fatalf("ApplyNotation(%q): %v", m.Notation(), err)
		}
		if err := s.ApplyNotation(ReverseMove(m.Notation())); err != nil {
			t.Fatalf("ApplyNotation(%q): %v", ReverseMove(m.Notation()), err)
		}
		if !s.IsSolved() {
			t.Errorf("%v then %v should restore solved", m, ReverseMove(m.Notation()))
			t.Log(s.String())
		}
	}
}

func TestCentersNeverMove(t *testing.T) {
	s := NewSolved()
	for i := 0; i < 3; i++ {
		s.Apply(AllMoves[:]...)
	}
	for _, f := range Faces {
		c, _ := s.Color(f, CenterIndex)
		if c != f.Color() {
			t.Errorf("center of %v = %v after moves", f, c)
		}
	}
}

func TestSexyMoveAndInverse(t *testing.T) {
	s := NewSolved()
	if err := s.ApplySequence("R U R' U'"); err != nil {
		t.Fatalf("ApplySequence: %v", err)
	}
	if s.IsSolved() {
		t.Error("R U R' U' should leave the cube unsolved")
	}
	if err := s.ApplySequence("U R U' R'"); err != nil {
		t.Fatalf("ApplySequence: %v", err)
	}
	if !s.IsSolved() {
		t.Error("U R U' R' should restore solved")
		t.Log(s.String())
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	s := NewSolved()
	for i := 0; i < 6; i++ {
		s.Apply(SexyMove...)
		if i < 5 && s.IsSolved() {
			t.Fatalf("solved after %d repetitions", i+1)
		}
	}
	if !s.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(s.String())
	}
}

func TestRMoveStickers(t *testing.T) {
	// After R on a solved cube the right column of U shows the front color,
	// the right column of F shows down, and the left column of B (as seen
	// from behind) shows up.
	s := NewSolved()
	s.ApplyMove(R)

	check := func(f Face, idx []int, want Color) {
		t.Helper()
		for _, i := range idx {
			c, _ := s.Color(f, i)
			if c != want {
				t.Errorf("%v[%d] = %v, want %v", f, i, c, want)
			}
		}
	}
	check(FaceU, []int{2, 5, 8}, Green)
	check(FaceF, []int{2, 5, 8}, Yellow)
	check(FaceD, []int{2, 5, 8}, Blue)
	check(FaceB, []int{0, 3, 6}, White)
	check(FaceU, []int{0, 1, 3, 4, 6, 7}, White)
	check(FaceL, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, Orange)
	check(FaceR, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, Red)
}

func TestUMoveStickers(t *testing.T) {
	// U clockwise brings the right face's top row to the front.
	s := NewSolved()
	s.ApplyMove(U)
	for i := 0; i < 3; i++ {
		if c, _ := s.Color(FaceF, i); c != Red {
			t.Errorf("F[%d] = %v, want red", i, c)
		}
		if c, _ := s.Color(FaceL, i); c != Green {
			t.Errorf("L[%d] = %v, want green", i, c)
		}
		if c, _ := s.Color(FaceB, i); c != Orange {
			t.Errorf("B[%d] = %v, want orange", i, c)
		}
		if c, _ := s.Color(FaceR, i); c != Blue {
			t.Errorf("R[%d] = %v, want blue", i, c)
		}
	}
}

func TestFaceRotationCycle(t *testing.T) {
	// Mark the U face stickers and follow them through one U turn.
	s := New()
	marks := map[int]Color{0: Red, 1: Green, 2: Blue, 5: Yellow, 8: Orange, 7: White}
	for i, c := range marks {
		if err := s.SetColor(FaceU, i, c); err != nil {
			t.Fatalf("SetColor: %v", err)
		}
	}
	s.ApplyMove(U)

	// Corners travel 0->2->8->6, edges 1->5->7->3.
	want := map[int]Color{2: Red, 5: Green, 8: Blue, 7: Yellow, 6: Orange, 3: White}
	for i, c := range want {
		got, _ := s.Color(FaceU, i)
		if got != c {
			t.Errorf("U[%d] = %v, want %v", i, got, c)
		}
	}
}

func TestApplyNotationRejectsUnknownToken(t *testing.T) {
	for _, token := range []string{"", "r", "X", "R3", "R'2", " R", "R ", "M", "Rw", "u'"} {
		s := NewSolved()
		s.Apply(SexyMove...)
		before := s.Clone()
		if err := s.ApplyNotation(token); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ApplyNotation(%q) err = %v, want ErrInvalidNotation", token, err)
		}
		if !s.Equal(before) {
			t.Errorf("ApplyNotation(%q) mutated the state", token)
		}
	}
}

func TestApplySequenceIsAllOrNothing(t *testing.T) {
	s := NewSolved()
	if err := s.ApplySequence("R U X U'"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("err = %v, want ErrInvalidNotation", err)
	}
	if !s.IsSolved() {
		t.Error("a failed sequence should not apply any move")
	}
}

func TestApplyMoveIgnoresInvalidMove(t *testing.T) {
	s := NewSolved()
	s.ApplyMove(Move{Face: FaceR, Turn: 3})
	s.ApplyMove(Move{Face: Face(8), Turn: CW})
	if !s.IsSolved() {
		t.Error("invalid moves should be ignored")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"U", U},
		{"U'", UPrime},
		{"U2", U2},
		{"D'", DPrime},
		{"F2", F2},
		{"B", B},
		{"L'", LPrime},
		{"R2", R2},
	}

	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.Notation() != tt.in {
			t.Errorf("Notation() = %q, want %q", got.Notation(), tt.in)
		}
	}
}

func TestParseAndFormatMoves(t *testing.T) {
	moves, err := ParseMoves("  R U\tR'  U' ")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	if got := FormatMoves(moves); got != "R U R' U'" {
		t.Errorf("FormatMoves = %q", got)
	}
	if _, err := ParseMoves("R u"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("ParseMoves(R u) err = %v, want ErrInvalidNotation", err)
	}
	if got := FormatMoves(nil); got != "" {
		t.Errorf("FormatMoves(nil) = %q", got)
	}
}

func TestReverseMove(t *testing.T) {
	tests := map[string]string{
		"R":  "R'",
		"R'": "R",
		"R2": "R2",
		"U":  "U'",
		"D'": "D",
		"B2": "B2",
	}
	for in, want := range tests {
		if got := ReverseMove(in); got != want {
			t.Errorf("ReverseMove(%q) = %q, want %q", in, got, want)
		}
	}

	for _, m := range AllMoves {
		if got := ReverseMove(m.Notation()); got != m.Inverse().Notation() {
			t.Errorf("ReverseMove(%q) = %q, Inverse = %q", m.Notation(), got, m.Inverse().Notation())
		}
	}
}

func TestInvertMoves(t *testing.T) {
	inv := InvertMoves(SexyMove)
	if got := FormatMoves(inv); got != FormatMoves(InverseSexyMove) {
		t.Errorf("InvertMoves = %q, want %q", got, FormatMoves(InverseSexyMove))
	}

	s := NewSolved()
	scramble := []Move{F, R2, DPrime, B, L, U2, RPrime}
	s.Apply(scramble...)
	s.Apply(InvertMoves(scramble)...)
	if !s.IsSolved() {
		t.Error("scramble followed by its inverse should be solved")
	}
}

func TestMoveDescription(t *testing.T) {
	if got := RPrime.Description(); got != "Right face counter-clockwise 90°" {
		t.Errorf("Description = %q", got)
	}
	if got := U2.Description(); got != "Up face 180°" {
		t.Errorf("Description = %q", got)
	}
}

func TestPermutationTablesArePermutations(t *testing.T) {
	for _, f := range Faces {
		for _, turn := range []Turn{CW, CCW, Double} {
			p, ok := lookupTurn(Move{Face: f, Turn: turn})
			if !ok {
				t.Fatalf("no table for %v %d", f, turn)
			}
			seen := make(map[uint8]bool)
			moved := 0
			for i, src := range p {
				seen[src] = true
				if int(src) != i {
					moved++
				}
			}
			if len(seen) != StickerCount {
				t.Errorf("%v %d is not a permutation", f, turn)
			}
			if moved != 20 {
				t.Errorf("%v %d moves %d stickers, want 20", f, turn, moved)
			}
		}
	}
}

// sticker is a (face, index) position.
type sticker struct {
	face  Face
	index int
}

func TestClockwiseBorderStickers(t *testing.T) {
	// Where each border sticker of the adjacent faces lands after one
	// clockwise turn, seen from outside each face.
	tests := []struct {
		turn  Move
		moves map[sticker]sticker
	}{
		{U, map[sticker]sticker{
			{FaceF, 0}: {FaceL, 0}, {FaceF, 1}: {FaceL, 1}, {FaceF, 2}: {FaceL, 2},
			{FaceL, 0}: {FaceB, 0}, {FaceL, 1}: {FaceB, 1}, {FaceL, 2}: {FaceB, 2},
			{FaceB, 0}: {FaceR, 0}, {FaceB, 1}: {FaceR, 1}, {FaceB, 2}: {FaceR, 2},
			{FaceR, 0}: {FaceF, 0}, {FaceR, 1}: {FaceF, 1}, {FaceR, 2}: {FaceF, 2},
		}},
		{D, map[sticker]sticker{
			{FaceF, 6}: {FaceR, 6}, {FaceF, 7}: {FaceR, 7}, {FaceF, 8}: {FaceR, 8},
			{FaceR, 6}: {FaceB, 6}, {FaceR, 7}: {FaceB, 7}, {FaceR, 8}: {FaceB, 8},
			{FaceB, 6}: {FaceL, 6}, {FaceB, 7}: {FaceL, 7}, {FaceB, 8}: {FaceL, 8},
			{FaceL, 6}: {FaceF, 6}, {FaceL, 7}: {FaceF, 7}, {FaceL, 8}: {FaceF, 8},
		}},
		{F, map[sticker]sticker{
			{FaceU, 6}: {FaceR, 0}, {FaceU, 7}: {FaceR, 3}, {FaceU, 8}: {FaceR, 6},
			{FaceR, 0}: {FaceD, 2}, {FaceR, 3}: {FaceD, 1}, {FaceR, 6}: {FaceD, 0},
			{FaceD, 2}: {FaceL, 8}, {FaceD, 1}: {FaceL, 5}, {FaceD, 0}: {FaceL, 2},
			{FaceL, 8}: {FaceU, 6}, {FaceL, 5}: {FaceU, 7}, {FaceL, 2}: {FaceU, 8},
		}},
		{B, map[sticker]sticker{
			{FaceU, 2}: {FaceL, 0}, {FaceU, 1}: {FaceL, 3}, {FaceU, 0}: {FaceL, 6},
			{FaceL, 0}: {FaceD, 6}, {FaceL, 3}: {FaceD, 7}, {FaceL, 6}: {FaceD, 8},
			{FaceD, 6}: {FaceR, 8}, {FaceD, 7}: {FaceR, 5}, {FaceD, 8}: {FaceR, 2},
			{FaceR, 8}: {FaceU, 2}, {FaceR, 5}: {FaceU, 1}, {FaceR, 2}: {FaceU, 0},
		}},
		{L, map[sticker]sticker{
			{FaceU, 0}: {FaceF, 0}, {FaceU, 3}: {FaceF, 3}, {FaceU, 6}: {FaceF, 6},
			{FaceF, 0}: {FaceD, 0}, {FaceF, 3}: {FaceD, 3}, {FaceF, 6}: {FaceD, 6},
			{FaceD, 0}: {FaceB, 8}, {FaceD, 3}: {FaceB, 5}, {FaceD, 6}: {FaceB, 2},
			{FaceB, 8}: {FaceU, 0}, {FaceB, 5}: {FaceU, 3}, {FaceB, 2}: {FaceU, 6},
		}},
		{R, map[sticker]sticker{
			{FaceU, 2}: {FaceB, 6}, {FaceU, 5}: {FaceB, 3}, {FaceU, 8}: {FaceB, 0},
			{FaceB, 6}: {FaceD, 2}, {FaceB, 3}: {FaceD, 5}, {FaceB, 0}: {FaceD, 8},
			{FaceD, 2}: {FaceF, 2}, {FaceD, 5}: {FaceF, 5}, {FaceD, 8}: {FaceF, 8},
			{FaceF, 2}: {FaceU, 2}, {FaceF, 5}: {FaceU, 5}, {FaceF, 8}: {FaceU, 8},
		}},
	}

	for _, tt := range tests {
		for from, to := range tt.moves {
			s := New()
			if err := s.SetColor(from.face, from.index, Red); err != nil {
				t.Fatalf("SetColor(%v, %d): %v", from.face, from.index, err)
			}
			s.ApplyMove(tt.turn)

			if c, _ := s.Color(to.face, to.index); c != Red {
				t.Errorf("%v: %v[%d] should land on %v[%d]", tt.turn, from.face, from.index, to.face, to.index)
				t.Log(s.String())
			}
			if s.EmptyCount() != StickerCount-6-1 {
				t.Errorf("%v: marked sticker %v[%d] was duplicated or lost", tt.turn, from.face, from.index)
			}
		}
	}
}
