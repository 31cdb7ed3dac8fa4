package cubestate

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	s.Apply(cubestate.R, cubestate.U, cubestate.RPrime, cubestate.UPrime)
var (
	// Up face moves
	U      = Move{Face: FaceU, Turn: CW}     // Up clockwise
	UPrime = Move{Face: FaceU, Turn: CCW}    // Up counter-clockwise
	U2     = Move{Face: FaceU, Turn: Double} // Up 180

	// Down face moves
	D      = Move{Face: FaceD, Turn: CW}     // Down clockwise
	DPrime = Move{Face: FaceD, Turn: CCW}    // Down counter-clockwise
	D2     = Move{Face: FaceD, Turn: Double} // Down 180

	// Front face moves
	F      = Move{Face: FaceF, Turn: CW}     // Front clockwise
	FPrime = Move{Face: FaceF, Turn: CCW}    // Front counter-clockwise
	F2     = Move{Face: FaceF, Turn: Double} // Front 180

	// Back face moves
	B      = Move{Face: FaceB, Turn: CW}     // Back clockwise
	BPrime = Move{Face: FaceB, Turn: CCW}    // Back counter-clockwise
	B2     = Move{Face: FaceB, Turn: Double} // Back 180

	// Left face moves
	L      = Move{Face: FaceL, Turn: CW}     // Left clockwise
	LPrime = Move{Face: FaceL, Turn: CCW}    // Left counter-clockwise
	L2     = Move{Face: FaceL, Turn: Double} // Left 180

	// Right face moves
	R      = Move{Face: FaceR, Turn: CW}     // Right clockwise
	RPrime = Move{Face: FaceR, Turn: CCW}    // Right counter-clockwise
	R2     = Move{Face: FaceR, Turn: Double} // Right 180
)

// AllMoves lists the 18 face turns.
var AllMoves = [18]Move{
	U, UPrime, U2,
	D, DPrime, D2,
	F, FPrime, F2,
	B, BPrime, B2,
	L, LPrime, L2,
	R, RPrime, R2,
}

// SexyMove is R U R' U', one of the most common algorithms.
var SexyMove = []Move{R, U, RPrime, UPrime}

// InverseSexyMove is U R U' R', which undoes SexyMove.
var InverseSexyMove = []Move{U, R, UPrime, RPrime}
