// Package cubestate provides a 3x3 Rubik's cube sticker model for manual
// color entry and solution playback.
//
// # Features
//
//   - Blank state with fixed centers for sticker-by-sticker entry
//   - Completion and color-balance validation
//   - The 54-symbol solver string (faces U, R, F, D, L, B)
//   - The 18 face turns, inverses and sequence parsing
//
// # Quick Start
//
// Enter a cube by hand:
//
//	s := cubestate.New()
//	if err := s.SetColor(cubestate.FaceU, 0, cubestate.Red); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.CompletedFaceCount(), s.IsComplete())
//
// Or work from a solved cube:
//
//	s := cubestate.NewSolved()
//	s.Apply(cubestate.R, cubestate.U, cubestate.RPrime, cubestate.UPrime)
//	_ = s.ApplySequence("U R U' R'")
//	fmt.Println(s.IsSolved(), s.SolverString())
//
// # Ownership
//
// A State has a single owner. Hand a copy made with Clone to anything that
// will mutate it independently, such as a playback session.
package cubestate
