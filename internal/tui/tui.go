package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/fanout"
	"github.com/earlysvahn/chatlpu/internal/registry"
	"github.com/earlysvahn/chatlpu/internal/session"
)

// Config wires the TUI to the rest of the app.
type Config struct {
	APIKey   string
	Runner   *fanout.Runner
	Settings config.Config
}

type view int

const (
	viewChat view = iota
	viewSettings
)

// settingsRows is one row per registry model plus the instructions row.
func settingsRows() int { return len(registry.All()) + 1 }

type model struct {
	cfg        Config
	settings   config.Config // working copy edited in the settings panel
	transcript *session.Transcript

	viewport   viewport.Model
	textarea   textarea.Model
	instrInput textarea.Model

	view         view
	cursor       int
	editingInstr bool

	waiting       bool
	pendingModels []string
	pendingPrompt string
	pendingInstr  string
	results       []fanout.Result
	activeModel   string

	expanded bool
	status   string

	width  int
	height int
}

// modelResultMsg carries one finished model call of the in-flight fan-out.
type modelResultMsg struct {
	idx    int
	result fanout.Result
}

func Run(cfg Config) error {
	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(cfg Config) model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(3)

	instr := textarea.New()
	instr.Placeholder = "Custom instructions (optional)..."
	instr.CharLimit = 0
	instr.SetHeight(4)
	instr.SetValue(cfg.Settings.CustomInstructions)

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return model{
		cfg:        cfg,
		settings:   cfg.Settings,
		transcript: session.New(),
		viewport:   vp,
		textarea:   ta,
		instrInput: instr,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 6
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.textarea.SetWidth(msg.Width - 2)
		m.instrInput.SetWidth(msg.Width - 6)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case modelResultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if m.cfg.APIKey == "" {
			// Credential-missing state: the chat surface is withheld.
			if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.view == viewSettings {
			return m.updateSettings(msg)
		}
		return m.updateChat(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.Type {
	case tea.KeyCtrlS:
		m.view = viewSettings
		m.cursor = 0
		return m, nil
	case tea.KeyCtrlL:
		m.transcript.Clear()
		m.status = "Chat history cleared"
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyCtrlE:
		m.expanded = !m.expanded
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyEnter:
		if m.waiting {
			return m, nil
		}
		prompt := strings.TrimSpace(m.textarea.Value())
		if prompt == "" {
			return m, nil
		}
		// Snapshot the enabled models in registry enumeration order; the
		// snapshot fixes the turn's response set even if settings change
		// while the fan-out is still running.
		enabled := fanout.OrderEnabled(m.settings.SelectedModels)
		if len(enabled) == 0 {
			m.status = "Select at least one model in settings (ctrl+s)"
			return m, nil
		}

		m.transcript.AppendUser(prompt)
		m.textarea.Reset()
		m.waiting = true
		m.pendingModels = enabled
		m.pendingPrompt = prompt
		m.pendingInstr = m.settings.CustomInstructions
		m.results = nil
		m.activeModel = enabled[0]

		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, m.fetchCmd(0)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// fetchCmd runs exactly one model call. The next call is issued only after
// this one's result message arrives, which keeps the fan-out sequential.
func (m model) fetchCmd(idx int) tea.Cmd {
	name := m.pendingModels[idx]
	prompt := m.pendingPrompt
	instr := m.pendingInstr
	runner := m.cfg.Runner
	return func() tea.Msg {
		results, err := runner.Run(context.Background(), []string{name}, prompt, instr)
		if err != nil {
			return modelResultMsg{idx: idx, result: fanout.Result{Model: name, Err: err}}
		}
		return modelResultMsg{idx: idx, result: results[0]}
	}
}

func (m model) handleResult(msg modelResultMsg) (tea.Model, tea.Cmd) {
	m.results = append(m.results, msg.result)

	next := msg.idx + 1
	if next < len(m.pendingModels) {
		m.activeModel = m.pendingModels[next]
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, m.fetchCmd(next)
	}

	m.transcript.AppendAssistant(m.results)
	m.waiting = false
	m.activeModel = ""
	m.results = nil
	m.pendingModels = nil
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, nil
}

func (m model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingInstr {
		switch msg.Type {
		case tea.KeyEsc:
			m.editingInstr = false
			m.instrInput.Blur()
			m.settings.CustomInstructions = m.instrInput.Value()
			return m, nil
		default:
			var cmd tea.Cmd
			m.instrInput, cmd = m.instrInput.Update(msg)
			return m, cmd
		}
	}

	m.status = ""
	switch msg.String() {
	case "esc":
		m.view = viewChat
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < settingsRows()-1 {
			m.cursor++
		}
	case " ":
		names := registry.Names()
		if m.cursor < len(names) {
			name := names[m.cursor]
			if m.settings.Enabled(name) {
				m.settings.Disable(name)
			} else {
				m.settings.Enable(name)
			}
		}
	case "enter":
		if m.cursor == settingsRows()-1 {
			m.editingInstr = true
			m.instrInput.SetValue(m.settings.CustomInstructions)
			m.instrInput.Focus()
			return m, textarea.Blink
		}
	case "s":
		m.settings.CustomInstructions = m.instrInput.Value()
		if err := config.Save(m.settings); err != nil {
			m.status = "Error saving configuration: " + err.Error()
		} else {
			m.status = "Configuration saved"
		}
	}
	return m, nil
}
