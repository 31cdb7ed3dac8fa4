package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubestate"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// netRenderer draws the unfolded cube using the configured palette.
type netRenderer struct {
	stickers map[cubestate.Color]lipgloss.Style
}

func newNetRenderer(palette map[string]string) netRenderer {
	r := netRenderer{stickers: make(map[cubestate.Color]lipgloss.Style)}
	for _, c := range append([]cubestate.Color{cubestate.Empty}, cubestate.Colors[:]...) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
		if code, ok := palette[c.String()]; ok {
			style = style.Background(lipgloss.Color(code))
		}
		r.stickers[c] = style
	}
	return r
}

// cell renders one sticker; the cursor sticker is bracketed.
func (r netRenderer) cell(c cubestate.Color, cursor bool) string {
	text := fmt.Sprintf(" %c ", c.Symbol())
	if cursor {
		text = fmt.Sprintf("[%c]", c.Symbol())
	}
	return r.stickers[c].Render(text)
}

// faceRow renders row r of a face.
func (r netRenderer) faceRow(s *cubestate.State, f cubestate.Face, row int, cur *cursor) string {
	face, _ := s.Face(f)
	var b strings.Builder
	for col := 0; col < 3; col++ {
		i := row*3 + col
		b.WriteString(r.cell(face[i], cur != nil && cur.face == f && cur.index == i))
	}
	return b.String()
}

// Render draws the net:
//
//	    U
//	L F R B
//	    D
func (r netRenderer) Render(s *cubestate.State, cur *cursor) string {
	pad := strings.Repeat(" ", 9)
	var lines []string

	for row := 0; row < 3; row++ {
		lines = append(lines, pad+r.faceRow(s, cubestate.FaceU, row, cur))
	}
	for row := 0; row < 3; row++ {
		var b strings.Builder
		for _, f := range []cubestate.Face{cubestate.FaceL, cubestate.FaceF, cubestate.FaceR, cubestate.FaceB} {
			b.WriteString(r.faceRow(s, f, row, cur))
		}
		lines = append(lines, b.String())
	}
	for row := 0; row < 3; row++ {
		lines = append(lines, pad+r.faceRow(s, cubestate.FaceD, row, cur))
	}

	return strings.Join(lines, "\n")
}

// summary describes entry progress and validity of a state.
func summary(s *cubestate.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Faces complete: %d/6   Empty stickers: %d\n", s.CompletedFaceCount(), s.EmptyCount())
	if s.IsComplete() {
		fmt.Fprintf(&b, "Phase: %s\n", s.Phase().DisplayName())
	}

	switch err := s.Validate(); {
	case err != nil:
		fmt.Fprintf(&b, "Status: %s\n", errorStyle.Render(err.Error()))
	case s.IsSolved():
		fmt.Fprintf(&b, "Status: %s\n", okStyle.Render("solved"))
	default:
		fmt.Fprintf(&b, "Status: %s\n", okStyle.Render("valid"))
	}
	return b.String()
}
