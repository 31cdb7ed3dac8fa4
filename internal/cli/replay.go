package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/playback"
)

type replayKeyMap struct {
	play   key.Binding
	next   key.Binding
	prev   key.Binding
	start  key.Binding
	end    key.Binding
	faster key.Binding
	slower key.Binding
	help   key.Binding
	quit   key.Binding
}

func (k replayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.next, k.prev, k.start, k.faster, k.slower, k.quit}
}

func (k replayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.play, k.next, k.prev},
		{k.start, k.end},
		{k.faster, k.slower},
		{k.help, k.quit},
	}
}

func newReplayKeyMap() replayKeyMap {
	return replayKeyMap{
		play:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:   key.NewBinding(key.WithKeys("right", "n", "l"), key.WithHelp("→/n", "next")),
		prev:   key.NewBinding(key.WithKeys("left", "p", "h"), key.WithHelp("←/p", "previous")),
		start:  key.NewBinding(key.WithKeys("home", "r"), key.WithHelp("r", "restart")),
		end:    key.NewBinding(key.WithKeys("end", "e"), key.WithHelp("e", "end")),
		faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Replay model
type replayModel struct {
	session *playback.Session
	title   string
	speed   playback.Speed
	playing bool
	gen     int // matches the pending tick; stale ticks are dropped

	net  netRenderer
	keys replayKeyMap
	help help.Model

	speedChanged bool
	quitting     bool
}

type replayTickMsg struct{ gen int }

func newReplayModel(session *playback.Session, title string, speed playback.Speed, autoPlay bool, net netRenderer) *replayModel {
	return &replayModel{
		session: session,
		title:   title,
		speed:   speed,
		playing: autoPlay && !session.Done(),
		net:     net,
		keys:    newReplayKeyMap(),
		help:    help.New(),
	}
}

func (m *replayModel) Init() tea.Cmd {
	if m.playing {
		return m.schedule()
	}
	return nil
}

func (m *replayModel) schedule() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.speed.Interval(), func(time.Time) tea.Msg {
		return replayTickMsg{gen: gen}
	})
}

func (m *replayModel) stop() {
	m.playing = false
	m.gen++
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quitting = true
			m.stop()
			return m, tea.Quit

		case key.Matches(msg, m.keys.play):
			if m.playing {
				m.stop()
				return m, nil
			}
			if m.session.Done() {
				return m, nil
			}
			m.playing = true
			m.gen++
			return m, m.schedule()

		case key.Matches(msg, m.keys.next):
			m.stop()
			m.session.Next()

		case key.Matches(msg, m.keys.prev):
			m.stop()
			m.session.Prev()

		case key.Matches(msg, m.keys.start):
			m.stop()
			m.session.Reset()

		case key.Matches(msg, m.keys.end):
			m.stop()
			_ = m.session.JumpTo(m.session.Len())

		case key.Matches(msg, m.keys.faster), key.Matches(msg, m.keys.slower):
			speed := m.speed.Faster()
			if key.Matches(msg, m.keys.slower) {
				speed = m.speed.Slower()
			}
			if speed == m.speed {
				return m, nil
			}
			m.speed = speed
			m.speedChanged = true
			if m.playing {
				m.gen++
				return m, m.schedule()
			}

		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case replayTickMsg:
		if msg.gen != m.gen || !m.playing {
			return m, nil
		}
		m.session.Next()
		if m.session.Done() {
			m.stop()
			return m, nil
		}
		return m, m.schedule()
	}

	return m, nil
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder
	snap := m.session.Snapshot()

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.net.Render(m.session.State(), nil))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Step %d/%d  %s", snap.Position, snap.Total, progressBar(snap.Progress, 20))
	if m.playing {
		status += "  [PLAYING]"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString(fmt.Sprintf("  (%s)\n", m.speed))
	b.WriteString(fmt.Sprintf("Phase: %s (best %s)\n", m.session.State().Phase().DisplayName(), m.bestPhase().DisplayName()))

	switch {
	case snap.Total == 0:
		b.WriteString("Nothing to play: the cube is already solved.\n")
	case snap.Position == 0:
		b.WriteString("Ready. Press space to play.\n")
	default:
		b.WriteString(fmt.Sprintf("Move: %s  %s\n", moveStyle.Render(snap.Move), snap.Description))
		if step, ok := m.session.Current(); ok {
			b.WriteString(helpStyle.Render("Say: " + notation.Spoken(step.Move)))
			b.WriteString("\n")
		}
	}
	if snap.Completed && snap.Total > 0 {
		b.WriteString(okStyle.Render("Solution complete!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.moveLine())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// bestPhase is the highest phase reached on the way to the current step.
func (m *replayModel) bestPhase() cubestate.Phase {
	origin := m.session.Origin()
	best := origin.Phase()
	for _, ms := range cubestate.Milestones(origin, m.session.Moves()[:m.session.Position()]) {
		best = ms.Phase
	}
	return best
}

// moveLine lists the sequence with the last applied move highlighted.
func (m *replayModel) moveLine() string {
	steps := m.session.Steps()
	pos := m.session.Position()
	parts := make([]string, len(steps))
	for i, st := range steps {
		switch {
		case i == pos-1:
			parts[i] = moveStyle.Render(st.Notation)
		case i < pos:
			parts[i] = st.Notation
		default:
			parts[i] = helpStyle.Render(st.Notation)
		}
	}
	return strings.Join(parts, " ")
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
