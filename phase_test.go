package cubestate

import "testing"

func TestPhaseDetection(t *testing.T) {
	type sticker struct {
		face  Face
		index int
		color Color
	}

	tests := []struct {
		name     string
		moves    string
		stickers []sticker
		want     Phase
	}{
		{name: "solved", want: PhaseSolved},
		{name: "U turn breaks the cross", moves: "U", want: PhaseScrambled},
		{name: "R turn", moves: "R", want: PhaseScrambled},
		{name: "D turn keeps two layers", moves: "D", want: PhaseYellowCross},
		{name: "D2", moves: "D2", want: PhaseYellowCross},
		{
			name: "twisted top corner",
			stickers: []sticker{
				{FaceU, 8, Green}, {FaceF, 2, Red}, {FaceR, 0, White},
			},
			want: PhaseWhiteCross,
		},
		{
			name: "flipped middle edge",
			stickers: []sticker{
				{FaceF, 5, Red}, {FaceR, 3, Green},
			},
			want: PhaseFirstLayer,
		},
		{
			name: "twisted bottom corner",
			stickers: []sticker{
				{FaceF, 8, Yellow}, {FaceR, 6, Green}, {FaceD, 2, Red},
			},
			want: PhaseYellowCorners,
		},
		{
			name: "swapped bottom edges",
			stickers: []sticker{
				{FaceF, 7, Red}, {FaceR, 7, Green},
			},
			want: PhaseYellowOriented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolved()
			if err := s.ApplySequence(tt.moves); err != nil {
				t.Fatalf("ApplySequence: %v", err)
			}
			for _, st := range tt.stickers {
				if err := s.SetColor(st.face, st.index, st.color); err != nil {
					t.Fatalf("SetColor: %v", err)
				}
			}
			if got := s.Phase(); got != tt.want {
				t.Errorf("Phase = %v, want %v", got, tt.want)
				t.Log(s.String())
			}
		})
	}
}

func TestPhaseOfBlankState(t *testing.T) {
	if got := New().Phase(); got != PhaseScrambled {
		t.Errorf("blank Phase = %v, want scrambled", got)
	}
}

func TestPhaseOrdering(t *testing.T) {
	if !(PhaseScrambled < PhaseWhiteCross && PhaseYellowOriented < PhaseSolved) {
		t.Error("phases should be ordered")
	}
	if PhaseSecondLayer.String() != "second_layer" || PhaseSecondLayer.DisplayName() != "Second Layer" {
		t.Errorf("PhaseSecondLayer = %q / %q", PhaseSecondLayer, PhaseSecondLayer.DisplayName())
	}
	if Phase(42).String() != "unknown" {
		t.Error("out of range phase should be unknown")
	}
}
