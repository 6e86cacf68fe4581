package session

import (
	"errors"
	"testing"

	"github.com/earlysvahn/chatlpu/internal/fanout"
)

func TestAppendAssistant_OneResponsePerResult(t *testing.T) {
	tr := New()
	tr.AppendUser("Hello")
	tr.AppendAssistant([]fanout.Result{
		{Model: "Llama 3.3 70B Versatile", Content: "hi"},
		{Model: "Qwen3 32B", Err: errors.New("timeout")},
	})

	turns := tr.Turns()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Role != "user" || turns[0].Content != "Hello" {
		t.Errorf("turns[0] = %+v", turns[0])
	}

	asst := turns[1]
	if asst.Role != "assistant" {
		t.Fatalf("role = %q", asst.Role)
	}
	if len(asst.Responses) != 2 {
		t.Fatalf("responses = %v, want exactly 2 keys", asst.Responses)
	}

	ok := asst.Responses["Llama 3.3 70B Versatile"]
	if ok.Failed() || ok.Content != "hi" {
		t.Errorf("llama response = %+v", ok)
	}
	failed := asst.Responses["Qwen3 32B"]
	if !failed.Failed() || failed.Err != "timeout" {
		t.Errorf("qwen response = %+v", failed)
	}
	if failed.Content != "" {
		t.Error("failed response must not carry content")
	}
}

func TestAppendAssistant_SummaryCountsModels(t *testing.T) {
	tr := New()
	turn := tr.AppendAssistant([]fanout.Result{
		{Model: "Kimi K2 Instruct", Content: "a"},
		{Model: "Qwen3 32B", Content: "b"},
		{Model: "OpenAI GPT-OSS 120B", Content: "c"},
	})
	if want := "Responses generated from 3 models"; turn.Content != want {
		t.Errorf("summary = %q, want %q", turn.Content, want)
	}
}

func TestTurns_HaveIDsAndTimestamps(t *testing.T) {
	tr := New()
	a := tr.AppendUser("one")
	b := tr.AppendUser("two")
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("turn IDs should be unique and non-empty: %q, %q", a.ID, b.ID)
	}
	if a.Time.IsZero() {
		t.Error("turn time should be set")
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.AppendUser("one")
	tr.AppendAssistant([]fanout.Result{{Model: "Qwen3 32B", Content: "x"}})
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("Len = %d after Clear, want 0", tr.Len())
	}
	if len(tr.Turns()) != 0 {
		t.Fatal("Turns should be empty after Clear")
	}
}

func TestTurns_ReturnsCopy(t *testing.T) {
	tr := New()
	tr.AppendUser("one")
	turns := tr.Turns()
	turns[0].Content = "mutated"
	if tr.Turns()[0].Content != "one" {
		t.Fatal("Turns must not expose internal state")
	}
}
