package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/fanout"
)

type stubFetcher struct {
	fail map[string]error
}

func (f *stubFetcher) Complete(_ context.Context, modelID, _, _ string) (string, error) {
	if err, ok := f.fail[modelID]; ok {
		return "", err
	}
	return "reply from " + modelID, nil
}

func testModel(apiKey string, selected []string) model {
	return newModel(Config{
		APIKey: apiKey,
		Runner: &fanout.Runner{Fetcher: &stubFetcher{}},
		Settings: config.Config{
			SelectedModels: selected,
		},
	})
}

func press(m model, key tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(model), cmd
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMissingKey_WithholdsChatSurface(t *testing.T) {
	m := testModel("", []string{"Qwen3 32B"})

	view := m.View()
	if !strings.Contains(view, "API key not found") {
		t.Errorf("view should show the credential-missing state, got %q", view)
	}

	m.textarea.SetValue("hello")
	m, cmd := press(m, enterKey())
	if cmd != nil {
		t.Error("input must be ignored while the credential is missing")
	}
	if m.transcript.Len() != 0 {
		t.Error("no turn should be recorded without a credential")
	}
}

func TestSubmit_BlockedWithNoModels(t *testing.T) {
	m := testModel("key", []string{})
	m.textarea.SetValue("hello")

	m, cmd := press(m, enterKey())
	if cmd != nil {
		t.Error("no fetch should start with zero models enabled")
	}
	if m.transcript.Len() != 0 {
		t.Errorf("transcript should stay empty, got %d turns", m.transcript.Len())
	}
	if !strings.Contains(m.status, "at least one model") {
		t.Errorf("status = %q, want guidance message", m.status)
	}
}

func TestSubmit_SnapshotsEnabledModelsInRegistryOrder(t *testing.T) {
	// Config order deliberately reversed.
	m := testModel("key", []string{"Qwen3 32B", "Llama 3.3 70B Versatile"})
	m.textarea.SetValue("hello")

	m, cmd := press(m, enterKey())
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	if !m.waiting {
		t.Error("model should be waiting during fan-out")
	}
	want := []string{"Llama 3.3 70B Versatile", "Qwen3 32B"}
	if len(m.pendingModels) != 2 || m.pendingModels[0] != want[0] || m.pendingModels[1] != want[1] {
		t.Errorf("pendingModels = %v, want %v", m.pendingModels, want)
	}
	if m.transcript.Len() != 1 {
		t.Fatalf("transcript should hold the user turn, got %d", m.transcript.Len())
	}
}

func TestFanout_SequentialChainBuildsAssistantTurn(t *testing.T) {
	m := testModel("key", []string{"Llama 3.3 70B Versatile", "Qwen3 32B"})
	m.textarea.SetValue("hello")
	m, _ = press(m, enterKey())

	// First result arrives; the chain must issue the next fetch.
	next, cmd := m.Update(modelResultMsg{idx: 0, result: fanout.Result{Model: "Llama 3.3 70B Versatile", Content: "a"}})
	m = next.(model)
	if cmd == nil {
		t.Fatal("second model fetch should be issued after the first result")
	}
	if !m.waiting {
		t.Error("still waiting mid-fanout")
	}

	// Second (last) result: assistant turn is appended.
	next, cmd = m.Update(modelResultMsg{idx: 1, result: fanout.Result{Model: "Qwen3 32B", Err: errors.New("boom")}})
	m = next.(model)
	if cmd != nil {
		t.Error("no further fetch after the last model")
	}
	if m.waiting {
		t.Error("waiting should end with the last result")
	}

	turns := m.transcript.Turns()
	if len(turns) != 2 {
		t.Fatalf("transcript = %d turns, want user+assistant", len(turns))
	}
	asst := turns[1]
	if len(asst.Responses) != 2 {
		t.Fatalf("responses = %v, want both snapshot models", asst.Responses)
	}
	if !asst.Responses["Qwen3 32B"].Failed() {
		t.Error("failed model should be recorded as failed")
	}
	if asst.Responses["Llama 3.3 70B Versatile"].Content != "a" {
		t.Error("successful model should keep its content")
	}
}

func TestClearChat(t *testing.T) {
	m := testModel("key", []string{"Qwen3 32B"})
	m.transcript.AppendUser("hello")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.transcript.Len() != 0 {
		t.Error("ctrl+l should clear the transcript")
	}
	if !strings.Contains(m.status, "cleared") {
		t.Errorf("status = %q, want clear confirmation", m.status)
	}
}

func TestSettings_ToggleModel(t *testing.T) {
	m := testModel("key", []string{"OpenAI GPT-OSS 120B"})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.view != viewSettings {
		t.Fatal("ctrl+s should open settings")
	}

	// Cursor starts on the first registry model; space toggles it off.
	m, _ = press(m, runeKey(' '))
	if m.settings.Enabled("OpenAI GPT-OSS 120B") {
		t.Error("space should disable the first model")
	}
	m, _ = press(m, runeKey(' '))
	if !m.settings.Enabled("OpenAI GPT-OSS 120B") {
		t.Error("space should re-enable the first model")
	}
}

func TestSettings_SavePersists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m := testModel("key", []string{"Qwen3 32B"})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = press(m, runeKey('s'))
	if !strings.Contains(m.status, "saved") {
		t.Errorf("status = %q, want save confirmation", m.status)
	}

	got := config.Load()
	if len(got.SelectedModels) != 1 || got.SelectedModels[0] != "Qwen3 32B" {
		t.Errorf("persisted selection = %v", got.SelectedModels)
	}
}
