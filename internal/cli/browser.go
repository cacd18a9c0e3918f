package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"translator/internal/domain"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type browserKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var browserKeys = browserKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "p", "P"),
		key.WithHelp("←/p", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "n", "N"),
		key.WithHelp("→/n", "next"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "x", "X", "esc", "ctrl+c"),
		key.WithHelp("q", "back to menu"),
	),
}

// browserModel pages through entries one at a time
type browserModel struct {
	entries []domain.Entry
	index   int
	render  func(domain.Entry) string
	keys    browserKeyMap
	help    help.Model
}

func newBrowserModel(entries []domain.Entry, render func(domain.Entry) string) browserModel {
	return browserModel{
		entries: entries,
		render:  render,
		keys:    browserKeys,
		help:    help.New(),
	}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.index > 0 {
				m.index--
			}
		case key.Matches(msg, m.keys.Next):
			if m.index < len(m.entries)-1 {
				m.index++
			}
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m browserModel) View() string {
	if len(m.entries) == 0 {
		return "No entries.\n\n" + m.help.View(m.keys) + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Entry %d of %d\n\n", m.index+1, len(m.entries))
	b.WriteString(m.render(m.entries[m.index]))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Browser shows entries in an interactive pager
type Browser struct {
	in     io.Reader
	out    io.Writer
	render func(domain.Entry) string
}

// NewBrowser creates a pager reading keys from in and drawing to out
func NewBrowser(in io.Reader, out io.Writer, render func(domain.Entry) string) *Browser {
	return &Browser{in: in, out: out, render: render}
}

// Browse blocks until the user leaves the pager
func (b *Browser) Browse(entries []domain.Entry) error {
	p := tea.NewProgram(newBrowserModel(entries, b.render),
		tea.WithInput(b.in),
		tea.WithOutput(b.out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run entry browser: %w", err)
	}
	return nil
}

// IsInteractive reports whether both files are terminals
func IsInteractive(in, out *os.File) bool {
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
