// Package analysis measures move sequences and removes wasted motion.
package analysis

import (
	"github.com/SeamusWaldron/cubestate"
)

// Cancellation is a move immediately undone by the next (R then R').
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
}

// MergeOpportunity is a pair of same-face moves that could be one move.
type MergeOpportunity struct {
	Index1     int    `json:"index1"`
	Index2     int    `json:"index2"`
	Move1      string `json:"move1"`
	Move2      string `json:"move2"`
	MergedMove string `json:"merged_move"`
}

// BackAndForthPattern is an alternating pair repeated at least three
// times (R U R U R U).
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
}

// Report summarizes a move sequence.
type Report struct {
	TotalMoves     int            `json:"total_moves"`   // half-turn metric
	QuarterTurns   int            `json:"quarter_turns"` // quarter-turn metric
	OptimizedMoves int            `json:"optimized_moves"`
	Efficiency     float64        `json:"efficiency"`
	FaceCounts     map[string]int `json:"face_counts"`

	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity    `json:"merge_opportunities"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// Analyze measures a move sequence and finds repetitions and wasted motion.
func Analyze(moves []cubestate.Move) *Report {
	optimized := OptimizeMoves(moves)
	report := &Report{
		TotalMoves:             len(moves),
		OptimizedMoves:         len(optimized),
		Efficiency:             CalculateEfficiency(moves, optimized),
		FaceCounts:             make(map[string]int),
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
		BackAndForthPatterns:   findBackAndForth(moves),
	}

	for _, m := range moves {
		report.QuarterTurns += quarterTurns(m)
		report.FaceCounts[m.Face.String()]++
	}

	for i := 0; i+1 < len(moves); i++ {
		m1, m2 := moves[i], moves[i+1]
		if m1.Face != m2.Face {
			continue
		}

		merged, ok := mergeMoves(m1, m2)
		if !ok {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Notation(),
				Move2:  m2.Notation(),
			})
			report.TotalWastedMoves += 2
			continue
		}

		report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
			Index1:     i,
			Index2:     i + 1,
			Move1:      m1.Notation(),
			Move2:      m2.Notation(),
			MergedMove: merged.Notation(),
		})
		report.TotalWastedMoves++
	}

	return report
}

// findBackAndForth finds alternating move patterns like R U R U R U.
func findBackAndForth(moves []cubestate.Move) []BackAndForthPattern {
	patterns := []BackAndForthPattern{}

	i := 0
	for i+3 < len(moves) {
		a, b := moves[i], moves[i+1]

		count := 1
		j := i + 2
		for j+1 < len(moves) && moves[j] == a && moves[j+1] == b {
			count++
			j += 2
		}

		// At least 3 repetitions to be noteworthy
		if count >= 3 && a != b {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

// OptimizeMoves returns the sequence with adjacent same-face moves merged
// and cancelled, repeatedly, so R U U' R' becomes empty. The result has
// the same effect on any state.
func OptimizeMoves(moves []cubestate.Move) []cubestate.Move {
	result := make([]cubestate.Move, 0, len(moves))

	for _, move := range moves {
		if len(result) == 0 || result[len(result)-1].Face != move.Face {
			result = append(result, move)
			continue
		}

		last := &result[len(result)-1]
		if merged, ok := mergeMoves(*last, move); ok {
			*last = merged
		} else {
			result = result[:len(result)-1]
		}
	}

	return result
}

// CalculateEfficiency calculates the efficiency ratio (optimized/original).
func CalculateEfficiency(original, optimized []cubestate.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}

// mergeMoves combines two turns of the same face. ok is false when they
// cancel out.
func mergeMoves(a, b cubestate.Move) (cubestate.Move, bool) {
	merged := cubestate.Move{Face: a.Face}
	switch (quarters(a.Turn) + quarters(b.Turn)) % 4 {
	case 1:
		merged.Turn = cubestate.CW
	case 2:
		merged.Turn = cubestate.Double
	case 3:
		merged.Turn = cubestate.CCW
	default:
		return cubestate.Move{}, false
	}
	return merged, true
}

// quarters maps a turn to clockwise quarter turns in 0..3.
func quarters(t cubestate.Turn) int {
	return (int(t) + 4) % 4
}

// quarterTurns is the quarter-turn metric cost of a move.
func quarterTurns(m cubestate.Move) int {
	if m.Turn == cubestate.Double {
		return 2
	}
	return 1
}
