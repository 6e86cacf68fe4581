package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/earlysvahn/chatlpu/internal/registry"
	"github.com/earlysvahn/chatlpu/internal/render"
	"github.com/earlysvahn/chatlpu/internal/session"
	"github.com/earlysvahn/chatlpu/internal/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	modelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

const previewWidth = 70

func (m model) View() string {
	if m.cfg.APIKey == "" {
		return m.credentialMissingView()
	}
	if m.view == viewSettings {
		return m.settingsView()
	}
	return m.chatView()
}

func (m model) credentialMissingView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("⚡ ChatLPU") + "\n\n")
	sb.WriteString(errorStyle.Render("Groq API key not found.") + "\n\n")
	sb.WriteString("Create a .env file in your working directory with:\n\n")
	sb.WriteString("  GROQ_API_KEY=your_actual_api_key_here\n\n")
	sb.WriteString("Get a key from https://console.groq.com/keys\n\n")
	sb.WriteString(dimStyle.Render("q or ctrl+c to quit"))
	return sb.String()
}

func (m model) chatView() string {
	header := titleStyle.Render("⚡ ChatLPU") +
		dimStyle.Render(fmt.Sprintf("  %d/%d models enabled", len(m.settings.SelectedModels), len(registry.All())))
	header += "\n" + strings.Repeat("─", max(m.width, 1))

	footer := strings.Repeat("─", max(m.width, 1)) + "\n"
	switch {
	case m.waiting:
		footer += fmt.Sprintf("🔄 %s...\n", m.activeModel)
	case m.status != "":
		footer += statusStyle.Render(m.status) + "\n"
		footer += m.textarea.View() + "\n"
	default:
		footer += m.textarea.View() + "\n"
	}
	footer += dimStyle.Render("enter send · ctrl+s settings · ctrl+l clear chat · ctrl+e expand · ctrl+c quit")

	return header + "\n" + m.viewport.View() + "\n" + footer
}

func (m model) renderTranscript() string {
	var sb strings.Builder

	for _, turn := range m.transcript.Turns() {
		if turn.Role == "user" {
			sb.WriteString(userStyle.Render("You: ") + turn.Content + "\n\n")
			continue
		}
		sb.WriteString(dimStyle.Render(turn.Content) + "\n")
		m.renderResponses(&sb, turn)
		sb.WriteString("\n")
	}

	// In-flight round: show what has already arrived.
	if m.waiting {
		for _, res := range m.results {
			if res.Err != nil {
				sb.WriteString(modelStyle.Render("▾ "+res.Model) + "\n")
				sb.WriteString(errorStyle.Render("  error: "+res.Err.Error()) + "\n")
			} else {
				sb.WriteString(modelStyle.Render("▾ "+res.Model) + "\n")
				sb.WriteString(indent(render.NormalizeModelOutput(res.Content)) + "\n")
			}
		}
	}

	return sb.String()
}

// renderResponses draws one panel per model in the turn. Panels collapse to
// a one-line preview unless expanded; a single-model turn is always
// expanded, matching the expander behavior of the settings panel surface.
func (m model) renderResponses(sb *strings.Builder, turn session.Turn) {
	expand := m.expanded || len(turn.Responses) == 1
	for _, mdl := range registry.All() {
		resp, ok := turn.Responses[mdl.DisplayName]
		if !ok {
			continue
		}
		if expand {
			sb.WriteString(modelStyle.Render("▾ "+mdl.DisplayName) + "\n")
			if resp.Failed() {
				sb.WriteString(errorStyle.Render("  error: "+resp.Err) + "\n")
			} else {
				sb.WriteString(indent(render.NormalizeModelOutput(resp.Content)) + "\n")
			}
			continue
		}
		preview := utils.Truncate(utils.FirstLine(render.NormalizeModelOutput(resp.Content)), previewWidth)
		if resp.Failed() {
			preview = errorStyle.Render("error: " + utils.Truncate(resp.Err, previewWidth))
		}
		sb.WriteString(modelStyle.Render("▸ "+mdl.DisplayName) + dimStyle.Render("  "+preview) + "\n")
	}
}

func (m model) settingsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("⚙ Configuration") + "\n")
	sb.WriteString(strings.Repeat("─", max(m.width, 1)) + "\n\n")

	sb.WriteString("Models available:\n")
	for i, name := range registry.Names() {
		cursor := "  "
		if m.cursor == i && !m.editingInstr {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.settings.Enabled(name) {
			box = checkedStyle.Render("[x]")
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, name))
	}
	if len(m.settings.SelectedModels) == 0 {
		sb.WriteString(errorStyle.Render("  ⚠ select at least one model") + "\n")
	}

	sb.WriteString("\nCustom instructions:\n")
	cursor := "  "
	if m.cursor == settingsRows()-1 && !m.editingInstr {
		cursor = cursorStyle.Render("> ")
	}
	if m.editingInstr {
		sb.WriteString(m.instrInput.View() + "\n")
		sb.WriteString(dimStyle.Render("esc to finish editing") + "\n")
	} else {
		current := strings.TrimSpace(m.settings.CustomInstructions)
		if current == "" {
			current = dimStyle.Render("(none — models get the default instruction)")
		} else {
			current = utils.Truncate(current, previewWidth)
		}
		sb.WriteString(cursor + current + "\n")
	}

	if m.status != "" {
		sb.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	sb.WriteString("\n" + dimStyle.Render("space toggle · enter edit instructions · s save · esc back · ctrl+c quit"))
	return sb.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n")
}
