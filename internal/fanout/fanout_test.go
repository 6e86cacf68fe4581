package fanout

import (
	"context"
	"errors"
	"testing"
)

type fakeFetcher struct {
	calls   []string
	replies map[string]string
	fail    map[string]error
}

func (f *fakeFetcher) Complete(_ context.Context, modelID, _, _ string) (string, error) {
	f.calls = append(f.calls, modelID)
	if err, ok := f.fail[modelID]; ok {
		return "", err
	}
	return f.replies[modelID], nil
}

func TestRun_OneResultPerEnabledModel(t *testing.T) {
	f := &fakeFetcher{
		replies: map[string]string{
			"llama-3.3-70b-versatile": "llama says hi",
			"qwen/qwen3-32b":          "qwen says hi",
		},
	}
	r := &Runner{Fetcher: f}

	results, err := r.Run(context.Background(), []string{"Llama 3.3 70B Versatile", "Qwen3 32B"}, "Hello", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Model != "Llama 3.3 70B Versatile" || results[0].Content != "llama says hi" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Model != "Qwen3 32B" || results[1].Content != "qwen says hi" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestRun_FollowsRegistryOrderNotConfigOrder(t *testing.T) {
	f := &fakeFetcher{replies: map[string]string{}}
	r := &Runner{Fetcher: f}

	// Enabled list deliberately reversed relative to the registry.
	enabled := []string{"Qwen3 32B", "DeepSeek R1 Distill 70B", "OpenAI GPT-OSS 120B"}
	results, err := r.Run(context.Background(), enabled, "p", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantCalls := []string{"openai/gpt-oss-120b", "deepseek-r1-distill-llama-70b", "qwen/qwen3-32b"}
	if len(f.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", f.calls, wantCalls)
	}
	for i := range wantCalls {
		if f.calls[i] != wantCalls[i] {
			t.Errorf("call[%d] = %q, want %q", i, f.calls[i], wantCalls[i])
		}
	}
	if results[0].Model != "OpenAI GPT-OSS 120B" {
		t.Errorf("results[0].Model = %q, want registry order", results[0].Model)
	}
}

func TestRun_FailureDoesNotStopFanout(t *testing.T) {
	boom := errors.New("rate limited")
	f := &fakeFetcher{
		replies: map[string]string{"qwen/qwen3-32b": "still fine"},
		fail:    map[string]error{"llama-3.3-70b-versatile": boom},
	}
	r := &Runner{Fetcher: f}

	results, err := r.Run(context.Background(), []string{"Llama 3.3 70B Versatile", "Qwen3 32B"}, "p", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (failure still produces a result)", len(results))
	}
	if !errors.Is(results[0].Err, boom) {
		t.Errorf("results[0].Err = %v, want %v", results[0].Err, boom)
	}
	if results[0].Content != "" {
		t.Errorf("failed result must not carry content, got %q", results[0].Content)
	}
	if results[1].Err != nil || results[1].Content != "still fine" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestRun_NoModelsEnabled(t *testing.T) {
	f := &fakeFetcher{}
	r := &Runner{Fetcher: f}

	if _, err := r.Run(context.Background(), nil, "p", ""); !errors.Is(err, ErrNoModels) {
		t.Fatalf("err = %v, want ErrNoModels", err)
	}
	if _, err := r.Run(context.Background(), []string{"not a model"}, "p", ""); !errors.Is(err, ErrNoModels) {
		t.Fatalf("unknown names only: err = %v, want ErrNoModels", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("no network calls should occur, got %v", f.calls)
	}
}

func TestRun_OnStartReportsEachModel(t *testing.T) {
	f := &fakeFetcher{replies: map[string]string{}}
	var started []string
	r := &Runner{Fetcher: f, OnStart: func(name string) { started = append(started, name) }}

	if _, err := r.Run(context.Background(), []string{"Kimi K2 Instruct", "Qwen3 32B"}, "p", ""); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(started) != 2 || started[0] != "Kimi K2 Instruct" || started[1] != "Qwen3 32B" {
		t.Errorf("started = %v", started)
	}
}
