package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/jsclass/runtime"
	"github.com/example/jsclass/scenario"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput    textinput.Model
	cfg          scenario.Config
	session      *scenario.Session
	history      []historyEntry
	cmdHistory   []string
	historyIdx   int
	width        int
	height       int
	showHelp     bool
	showBindings bool
	showCommands bool
	quitting     bool
	initialized  bool
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Clear    key.Binding
	Tab      key.Binding
	Bindings key.Binding
	Help     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	Bindings: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle bindings"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg scenario.Config) replModel {
	ti := textinput.New()
	ti.Placeholder = "class Base, method Base.greet returns \"hi\", ..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "jsclass> "

	return replModel{
		textInput:  ti,
		cfg:        cfg,
		session:    scenario.NewSession(cfg),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 12
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Bindings):
			m.showBindings = !m.showBindings
			return m, nil

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			m.historyIdx = -1

			if strings.HasPrefix(input, ":") {
				return m.handleCommand(input)
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
			m.cmdHistory = append(m.cmdHistory, input)
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":commands", ":cmds":
		m.showCommands = !m.showCommands
	case ":clear", ":c":
		m.history = nil
	case ":bindings", ":b":
		m.showBindings = !m.showBindings
	case ":reset", ":r":
		m.session = scenario.NewSession(m.cfg)
		m.history = append(m.history, historyEntry{input: input, output: "Session reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

// completions lists the words that may follow the current input: command
// keywords at the start of a line, bindings and literals after that.
func (m replModel) completions(input string) (string, []string) {
	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return "", nil
	}
	last := words[len(words)-1]

	var candidates []string
	if len(words) == 1 {
		candidates = scenario.CommandNames()
	} else {
		candidates = append(m.session.Names(), "extends", "ctor", "returns", "super", "this", "throws",
			"new", "object", "null", "undefined", "nosuper", "none", "strict", "sloppy")
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, last) && c != last {
			matches = append(matches, c)
		}
	}
	sort.Strings(matches)
	return last, matches
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	last, matches := m.completions(input)

	switch {
	case len(matches) == 1:
		m.textInput.SetValue(strings.TrimSuffix(input, last) + matches[0])
		m.textInput.CursorEnd()
	case len(matches) > 1:
		m.history = append(m.history, historyEntry{output: "Completions: " + strings.Join(matches, ", ")})
	}
	return m
}

func (m replModel) evaluate(input string) (string, bool) {
	result, err := m.session.Exec(input)
	if err != nil {
		return m.session.FormatError(err), true
	}
	if result == nil {
		return runtime.Inspect(runtime.Undefined), false
	}
	return runtime.Inspect(result), false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("jsclass") + " " + mutedStyle.Render("class and super playground") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	if m.showCommands {
		reservedLines += len(scenario.CommandNames()) + 3
	}
	if m.showBindings {
		reservedLines += len(m.session.Names()) + 3
	}
	// each entry takes up to three lines
	availableEntries := max((m.height-reservedLines)/3, 1)

	historyStart := 0
	if len(m.history) > availableEntries {
		historyStart = len(m.history) - availableEntries
	}

	for _, entry := range m.history[historyStart:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showBindings {
		b.WriteString(renderBindingsPanel(m.session))
		b.WriteString("\n")
	}

	if m.showCommands {
		b.WriteString(renderCommandsPanel())
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" bindings  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderBindingsPanel(s *scenario.Session) string {
	names := s.Names()
	if len(names) == 0 {
		return borderStyle.Render(mutedStyle.Render("No bindings"))
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Bindings")}
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range names {
		shown := "<uninitialized>"
		if v, err := s.Lookup(name); err == nil {
			shown = runtime.Inspect(v)
		}
		lines = append(lines, fmt.Sprintf("  %s = %s", nameStyle.Render(name), shown))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderCommandsPanel() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Commands")}
	for _, usage := range scenario.Usage() {
		lines = append(lines, "  "+helpDescStyle.Render(usage))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete commands and bindings"},
		{"Enter", "Execute command"},
		{":help", "Toggle this help"},
		{":commands", "Toggle the command reference"},
		{":bindings", "Toggle bindings panel"},
		{":clear", "Clear history"},
		{":reset", "Start a fresh session"},
		{":quit", "Exit"},
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help")}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-9s", h.key)),
			helpDescStyle.Render(h.desc)))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(cfg scenario.Config) error {
	p := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
