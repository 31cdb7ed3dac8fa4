package cubestate

import "testing"

func TestTrackerReportsSolved(t *testing.T) {
	start := NewSolved()
	start.Apply(SexyMove...)

	tracker := NewTracker(start)
	if tracker.HighestPhase() != start.Phase() {
		t.Fatalf("HighestPhase = %v, want %v", tracker.HighestPhase(), start.Phase())
	}

	var reached []Phase
	tracker.OnPhase(func(p Phase, move int) {
		reached = append(reached, p)
		if move < 1 || move > 4 {
			t.Errorf("phase %v reported at move %d", p, move)
		}
	})
	tracker.ApplyMoves(InverseSexyMove)

	if !tracker.IsSolved() {
		t.Fatal("tracker should be solved")
	}
	if len(reached) == 0 || reached[len(reached)-1] != PhaseSolved {
		t.Errorf("reached = %v, want to end with solved", reached)
	}
	for i := 1; i < len(reached); i++ {
		if reached[i] <= reached[i-1] {
			t.Errorf("phases not increasing: %v", reached)
		}
	}
	if got := len(tracker.Moves()); got != 4 {
		t.Errorf("Moves = %d, want 4", got)
	}
	if !start.Equal(func() *State { s := NewSolved(); s.Apply(SexyMove...); return s }()) {
		t.Error("tracker mutated the start state")
	}
}

func TestTrackerIsMonotonic(t *testing.T) {
	tracker := NewTracker(NewSolved())
	calls := 0
	tracker.OnPhase(func(Phase, int) { calls++ })

	tracker.ApplyMove(R)
	if tracker.CurrentPhase() != PhaseScrambled {
		t.Errorf("CurrentPhase = %v, want scrambled", tracker.CurrentPhase())
	}
	if tracker.HighestPhase() != PhaseSolved {
		t.Errorf("HighestPhase = %v, want solved", tracker.HighestPhase())
	}

	tracker.ApplyMove(RPrime)
	if calls != 0 {
		t.Errorf("callback fired %d times, want 0", calls)
	}

	tracker.Reset(New())
	if tracker.HighestPhase() != PhaseScrambled || len(tracker.Moves()) != 0 {
		t.Error("Reset should restart tracking")
	}
}

func TestMilestones(t *testing.T) {
	start := NewSolved()
	start.Apply(D)

	got := Milestones(start, []Move{DPrime})
	if len(got) != 1 || got[0].Phase != PhaseSolved || got[0].Move != 1 {
		t.Errorf("Milestones = %+v", got)
	}
	if len(Milestones(NewSolved(), nil)) != 0 {
		t.Error("no moves should give no milestones")
	}
}
