package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var editCmd = &cobra.Command{
	Use:   "edit [state]",
	Short: "Enter a cube sticker by sticker",
	Long: `Start an interactive editor for entering a cube by hand.

Every face starts empty except its fixed center. Pick a color, move the
cursor and paint stickers. Painting a sticker with the color it already
has clears it again.

Keyboard shortcuts:
  arrows/hjkl  - Move within a face
  tab          - Next face (shift+tab for previous)
  1-6          - Pick white, yellow, green, blue, orange, red
  space/enter  - Paint the sticker (again to clear)
  x            - Clear the sticker
  R            - Reset the whole cube (asks first)
  s            - Save to the database
  q/Esc        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

var (
	editID   string
	editName string
)

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editID, "id", "", "Continue editing a saved cube")
	editCmd.Flags().StringVar(&editName, "name", "", "Name for a newly saved cube")
}

// cursor addresses one sticker.
type cursor struct {
	face  cubestate.Face
	index int
}

type editKeyMap struct {
	up, down, left, right key.Binding
	nextFace, prevFace    key.Binding
	colors                [6]key.Binding
	paint                 key.Binding
	clear                 key.Binding
	reset                 key.Binding
	confirm, cancel       key.Binding
	save                  key.Binding
	help                  key.Binding
	quit                  key.Binding
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.paint, k.nextFace, k.reset, k.save, k.help, k.quit}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.nextFace, k.prevFace},
		k.colors[:],
		{k.paint, k.clear, k.reset},
		{k.save, k.help, k.quit},
	}
}

func newEditKeyMap() editKeyMap {
	k := editKeyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		nextFace: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next face")),
		prevFace: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous face")),
		paint:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "paint")),
		clear:    key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "clear")),
		reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		confirm:  key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		cancel:   key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for i, c := range cubestate.Colors {
		n := fmt.Sprint(i + 1)
		k.colors[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, c.String()))
	}
	return k
}

// saveFunc persists the edited state and returns its cube ID.
type saveFunc func(*cubestate.State) (string, error)

// Editor model
type editModel struct {
	state *cubestate.State
	cur   cursor
	color cubestate.Color

	confirmReset bool
	status       string
	err          error
	cubeID       string
	faces        int // completed faces, for the progress hint

	save saveFunc
	net  netRenderer
	keys editKeyMap
	help help.Model

	quitting bool
}

func newEditModel(s *cubestate.State, save saveFunc, net netRenderer) *editModel {
	return &editModel{
		state: s,
		cur:   cursor{face: cubestate.FaceU, index: 0},
		color: cubestate.White,
		faces: s.CompletedFaceCount(),
		save:  save,
		net:   net,
		keys:  newEditKeyMap(),
		help:  help.New(),
	}
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmReset {
			switch {
			case key.Matches(msg, m.keys.confirm):
				m.state.Reset()
				m.faces = 0
				m.status = "Cube reset."
				m.confirmReset = false
			case key.Matches(msg, m.keys.cancel):
				m.confirmReset = false
				m.status = ""
			}
			return m, nil
		}

		m.err = nil
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.up):
			m.move(-3)
		case key.Matches(msg, m.keys.down):
			m.move(3)
		case key.Matches(msg, m.keys.left):
			m.move(-1)
		case key.Matches(msg, m.keys.right):
			m.move(1)
		case key.Matches(msg, m.keys.nextFace):
			m.cur.face = (m.cur.face + 1) % 6
		case key.Matches(msg, m.keys.prevFace):
			m.cur.face = (m.cur.face + 5) % 6
		case key.Matches(msg, m.keys.paint):
			m.paint()
		case key.Matches(msg, m.keys.clear):
			m.set(cubestate.Empty)
		case key.Matches(msg, m.keys.reset):
			m.confirmReset = true
		case key.Matches(msg, m.keys.save):
			m.saveState()
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			for i, b := range m.keys.colors {
				if key.Matches(msg, b) {
					m.color = cubestate.Colors[i]
				}
			}
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

// move shifts the cursor within the 3x3 face, stopping at the edges.
func (m *editModel) move(delta int) {
	row, col := m.cur.index/3, m.cur.index%3
	switch delta {
	case -3:
		row = max(row-1, 0)
	case 3:
		row = min(row+1, 2)
	case -1:
		col = max(col-1, 0)
	case 1:
		col = min(col+1, 2)
	}
	m.cur.index = row*3 + col
}

// paint applies the selected color, or clears the sticker when it already
// carries that color.
func (m *editModel) paint() {
	current, err := m.state.Color(m.cur.face, m.cur.index)
	if err != nil {
		m.err = err
		return
	}
	if current == m.color {
		m.set(cubestate.Empty)
		return
	}
	m.set(m.color)
}

func (m *editModel) set(c cubestate.Color) {
	if err := m.state.SetColor(m.cur.face, m.cur.index, c); err != nil {
		m.err = err
		return
	}

	m.status = ""
	if n := m.state.CompletedFaceCount(); n != m.faces {
		if n > m.faces && n < 6 {
			m.status = fmt.Sprintf("%d of 6 faces complete.", n)
		}
		m.faces = n
	}
	if m.state.IsComplete() {
		if err := m.state.Validate(); err != nil {
			m.err = err
		} else {
			m.status = "All stickers entered. Press s to save."
		}
	}
}

func (m *editModel) saveState() {
	if m.save == nil {
		return
	}
	id, err := m.save(m.state)
	if err != nil {
		m.err = err
		return
	}
	m.cubeID = id
	m.status = "Saved " + id
}

func (m *editModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cube Entry"))
	b.WriteString("\n\n")
	b.WriteString(m.net.Render(m.state, &m.cur))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Face: %s   Sticker: %d   Color: %s\n",
		m.cur.face.Name(), m.cur.index+1, m.net.cell(m.color, false)+" "+m.color.String())
	b.WriteString(statusStyle.Render(fmt.Sprintf("Faces complete: %d/6   Empty stickers: %d",
		m.state.CompletedFaceCount(), m.state.EmptyCount())))
	b.WriteString("\n")

	switch {
	case m.confirmReset:
		b.WriteString(errorStyle.Render("Reset every sticker? (y/n)"))
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func runEdit(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	repo := storage.NewCubeRepository(db)

	state := cubestate.New()
	cubeID := editID
	switch {
	case editID != "":
		cube, err := loadCube(db, editID)
		if err != nil {
			return err
		}
		state = cube.State
	case len(args) == 1:
		if state, err = parseState(args[0]); err != nil {
			return err
		}
	}

	save := func(s *cubestate.State) (string, error) {
		if cubeID != "" {
			return cubeID, repo.Update(cubeID, s)
		}
		id, err := repo.Save(editName, s)
		if err != nil {
			return "", err
		}
		cubeID = id
		return id, nil
	}

	model := newEditModel(state, save, newNetRenderer(cfg.Palette))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "State: %s\n", state.SolverString())
	fmt.Fprint(out, summary(state))
	if cubeID != "" && state.IsValid() {
		fmt.Fprintf(out, "Solve it with: cubestate solve --id %s --save\n", cubeID)
	}
	return nil
}
