package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/glyphwalk"
)

// sender is the part of *glyphwalk.Engine the model drives.
type sender interface {
	Send(ctx context.Context, ev glyphwalk.Event) bool
}

type keyMap struct {
	Quit      key.Binding
	Backspace key.Binding
	Space     key.Binding
	Left      key.Binding
	Right     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Space, k.Backspace, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "delete"),
	),
	Space: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "blank"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "right"),
	),
}

// docMsg carries a document snapshot from the engine observer.
type docMsg struct{ doc *glyphwalk.Document }

// releaseMsg drives release detection.
type releaseMsg time.Time

// model tracks which keys look held. Terminals only report presses, and a
// held key repeats; a key is released once no repeat has arrived for hold.
type model struct {
	ctx  context.Context
	eng  sender
	hold time.Duration
	now  func() time.Time

	held map[glyphwalk.Symbol]time.Time
	doc  *glyphwalk.Document
	help help.Model
}

func newModel(ctx context.Context, eng sender, hold time.Duration) model {
	return model{
		ctx:  ctx,
		eng:  eng,
		hold: hold,
		now:  time.Now,
		held: make(map[glyphwalk.Symbol]time.Time),
		doc:  glyphwalk.NewDocument(),
		help: help.New(),
	}
}

func (m model) releaseTick() tea.Cmd {
	return tea.Tick(m.hold/4, func(t time.Time) tea.Msg {
		return releaseMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.releaseTick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case docMsg:
		m.doc = msg.doc
	case releaseMsg:
		m.release()
		return m, m.releaseTick()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Backspace):
		m.eng.Send(m.ctx, glyphwalk.Press(glyphwalk.KeyBackspace))
	case key.Matches(msg, keys.Space):
		m.eng.Send(m.ctx, glyphwalk.Press(glyphwalk.KeySpace))
	case key.Matches(msg, keys.Left):
		m.eng.Send(m.ctx, glyphwalk.Press(glyphwalk.KeyArrowLeft))
	case key.Matches(msg, keys.Right):
		m.eng.Send(m.ctx, glyphwalk.Press(glyphwalk.KeyArrowRight))
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		s := glyphwalk.Symbol(msg.Runes[0])
		if !s.IsAlphaNum() {
			break
		}
		if _, down := m.held[s]; !down {
			m.eng.Send(m.ctx, glyphwalk.KeyDown(s))
		}
		m.held[s] = m.now()
	}
	return m, nil
}

// release sends a key up for every key whose repeats have stopped.
func (m model) release() {
	now := m.now()
	for s, last := range m.held {
		if now.Sub(last) >= m.hold {
			delete(m.held, s)
			m.eng.Send(m.ctx, glyphwalk.KeyUp(s))
		}
	}
}

func (m model) View() string {
	return renderDocument(m.doc) + "\n\n" + m.help.View(keys) + "\n"
}
