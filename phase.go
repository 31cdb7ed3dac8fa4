package cubestate

// Phase is a stage of the layer-by-layer method, with white on top and
// green in front. Phases are ordered from Scrambled to Solved and can be
// compared with < and >.
type Phase int

const (
	// PhaseScrambled means not even the white cross is in place.
	PhaseScrambled Phase = iota

	// PhaseWhiteCross means the four U edges are white and their side
	// stickers match the adjacent centers.
	PhaseWhiteCross

	// PhaseFirstLayer means the whole top layer is solved.
	PhaseFirstLayer

	// PhaseSecondLayer means the middle layer edges are solved as well.
	PhaseSecondLayer

	// PhaseYellowCross means the four D edges show yellow.
	PhaseYellowCross

	// PhaseYellowCorners means every bottom corner is in its slot, possibly
	// twisted.
	PhaseYellowCorners

	// PhaseYellowOriented means every bottom corner is solved; only the
	// bottom edges may still need cycling.
	PhaseYellowOriented

	// PhaseSolved means the cube is solved.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseWhiteCross:
		return "white_cross"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseSecondLayer:
		return "second_layer"
	case PhaseYellowCross:
		return "yellow_cross"
	case PhaseYellowCorners:
		return "yellow_corners"
	case PhaseYellowOriented:
		return "yellow_oriented"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseWhiteCross:
		return "White Cross"
	case PhaseFirstLayer:
		return "First Layer"
	case PhaseSecondLayer:
		return "Second Layer"
	case PhaseYellowCross:
		return "Yellow Cross"
	case PhaseYellowCorners:
		return "Yellow Corners Positioned"
	case PhaseYellowOriented:
		return "Yellow Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// sides are the four faces around the U-D axis.
var sides = [4]Face{FaceF, FaceR, FaceB, FaceL}

// bottomCorners lists each D corner as (face, index) triples.
var bottomCorners = [4][3][2]int{
	{{int(FaceF), 8}, {int(FaceR), 6}, {int(FaceD), 2}},
	{{int(FaceR), 8}, {int(FaceB), 6}, {int(FaceD), 8}},
	{{int(FaceB), 8}, {int(FaceL), 6}, {int(FaceD), 6}},
	{{int(FaceL), 8}, {int(FaceF), 6}, {int(FaceD), 0}},
}

// Phase reports how far a layer-by-layer solve has progressed. An
// incomplete state reports the phase its entered stickers already satisfy.
func (s *State) Phase() Phase {
	checks := []func() bool{
		s.whiteCross,
		s.firstLayer,
		s.secondLayer,
		s.yellowCross,
		s.yellowCornersPositioned,
		s.yellowCornersOriented,
		s.IsSolved,
	}

	phase := PhaseScrambled
	for _, done := range checks {
		if !done() {
			break
		}
		phase++
	}
	return phase
}

func (s *State) at(f Face, i int) Color {
	return s.stickers[slot(f, i)]
}

// matchesCenter reports whether every listed sticker of f has f's color.
func (s *State) matchesCenter(f Face, idx ...int) bool {
	for _, i := range idx {
		if s.at(f, i) != f.Color() {
			return false
		}
	}
	return true
}

func (s *State) whiteCross() bool {
	if !s.matchesCenter(FaceU, 1, 3, 5, 7) {
		return false
	}
	for _, f := range sides {
		if !s.matchesCenter(f, 1) {
			return false
		}
	}
	return true
}

func (s *State) firstLayer() bool {
	if !s.matchesCenter(FaceU, 0, 1, 2, 3, 5, 6, 7, 8) {
		return false
	}
	for _, f := range sides {
		if !s.matchesCenter(f, 0, 1, 2) {
			return false
		}
	}
	return true
}

func (s *State) secondLayer() bool {
	for _, f := range sides {
		if !s.matchesCenter(f, 3, 5) {
			return false
		}
	}
	return true
}

func (s *State) yellowCross() bool {
	return s.matchesCenter(FaceD, 1, 3, 5, 7)
}

// yellowCornersPositioned ignores twist: each corner carries the colors of
// the three faces it belongs to, in any order.
func (s *State) yellowCornersPositioned() bool {
	for _, corner := range bottomCorners {
		var want, got [3]Color
		for i, pos := range corner {
			want[i] = Face(pos[0]).Color()
			got[i] = s.at(Face(pos[0]), pos[1])
		}
		if !sameColors(want, got) {
			return false
		}
	}
	return true
}

func (s *State) yellowCornersOriented() bool {
	if !s.matchesCenter(FaceD, 0, 2, 6, 8) {
		return false
	}
	for _, f := range sides {
		if !s.matchesCenter(f, 6, 8) {
			return false
		}
	}
	return true
}

func sameColors(a, b [3]Color) bool {
	count := make(map[Color]int, 3)
	for i := range a {
		count[a[i]]++
		count[b[i]]--
	}
	for _, v := range count {
		if v != 0 {
			return false
		}
	}
	return true
}
