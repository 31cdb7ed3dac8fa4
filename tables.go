package cubestate

// segment addresses three stickers of one face.
type segment struct {
	face Face
	idx  [3]int
}

// Stickers of the turned face itself travel along these cycles under a
// clockwise turn: the sticker at cycle[k] moves to cycle[k+1].
var (
	cornerCycle = [4]int{0, 2, 8, 6}
	edgeCycle   = [4]int{1, 5, 7, 3}
)

// borderRings lists, per face, the four border triplets of the adjacent
// faces in travel order: under a clockwise turn the stickers of ring[k]
// move to ring[k+1], and ring[3] wraps to ring[0]. Triplets are ordered so
// that position j of one segment lands on position j of the next.
var borderRings = [6][4]segment{
	FaceU: {
		{FaceF, [3]int{0, 1, 2}},
		{FaceL, [3]int{0, 1, 2}},
		{FaceB, [3]int{0, 1, 2}},
		{FaceR, [3]int{0, 1, 2}},
	},
	FaceD: {
		{FaceF, [3]int{6, 7, 8}},
		{FaceR, [3]int{6, 7, 8}},
		{FaceB, [3]int{6, 7, 8}},
		{FaceL, [3]int{6, 7, 8}},
	},
	FaceF: {
		{FaceU, [3]int{6, 7, 8}},
		{FaceR, [3]int{0, 3, 6}},
		{FaceD, [3]int{2, 1, 0}},
		{FaceL, [3]int{8, 5, 2}},
	},
	FaceB: {
		{FaceU, [3]int{2, 1, 0}},
		{FaceL, [3]int{0, 3, 6}},
		{FaceD, [3]int{6, 7, 8}},
		{FaceR, [3]int{8, 5, 2}},
	},
	FaceL: {
		{FaceU, [3]int{0, 3, 6}},
		{FaceF, [3]int{0, 3, 6}},
		{FaceD, [3]int{0, 3, 6}},
		{FaceB, [3]int{8, 5, 2}},
	},
	FaceR: {
		{FaceU, [3]int{2, 5, 8}},
		{FaceB, [3]int{6, 3, 0}},
		{FaceD, [3]int{2, 5, 8}},
		{FaceF, [3]int{2, 5, 8}},
	},
}

// permutation maps sticker slots: after applying p, slot i holds what
// slot p[i] held before.
type permutation [StickerCount]uint8

// turnTables[face][turnIndex(turn)] is the permutation of that move.
var turnTables [6][3]permutation

func init() {
	for _, f := range Faces {
		cw := clockwise(f)
		turnTables[f][turnIndex(CW)] = cw
		turnTables[f][turnIndex(CCW)] = cw.inverse()
		turnTables[f][turnIndex(Double)] = cw.then(cw)
	}
}

func turnIndex(t Turn) int {
	switch t {
	case CW:
		return 0
	case CCW:
		return 1
	case Double:
		return 2
	default:
		return -1
	}
}

func identity() permutation {
	var p permutation
	for i := range p {
		p[i] = uint8(i)
	}
	return p
}

// clockwise builds the permutation of a clockwise quarter turn of f from
// the cycle tables.
func clockwise(f Face) permutation {
	p := identity()

	cycle := func(c [4]int) {
		for k := 0; k < 4; k++ {
			p[slot(f, c[(k+1)%4])] = uint8(slot(f, c[k]))
		}
	}
	cycle(cornerCycle)
	cycle(edgeCycle)

	ring := borderRings[f]
	for k := 0; k < 4; k++ {
		from, to := ring[k], ring[(k+1)%4]
		for j := 0; j < 3; j++ {
			p[slot(to.face, to.idx[j])] = uint8(slot(from.face, from.idx[j]))
		}
	}
	return p
}

func (p permutation) inverse() permutation {
	var q permutation
	for i, src := range p {
		q[src] = uint8(i)
	}
	return q
}

// then returns the permutation of applying p followed by q.
func (p permutation) then(q permutation) permutation {
	var r permutation
	for i := range r {
		r[i] = p[q[i]]
	}
	return r
}

func (p *permutation) apply(stickers *[StickerCount]Color) {
	old := *stickers
	for i, src := range p {
		stickers[i] = old[src]
	}
}

// lookupTurn returns the permutation for m, or false if m is not one of
// the 18 face turns.
func lookupTurn(m Move) (*permutation, bool) {
	if !m.Valid() {
		return nil, false
	}
	return &turnTables[m.Face][turnIndex(m.Turn)], true
}
