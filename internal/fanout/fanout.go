package fanout

import (
	"context"
	"errors"
	"fmt"

	"github.com/earlysvahn/chatlpu/internal/registry"
)

// ErrNoModels is returned when a prompt is submitted with nothing enabled.
// Callers must block submission and make no network calls.
var ErrNoModels = errors.New("no models enabled")

// Fetcher is the single-call contract implemented by groq.Client.
type Fetcher interface {
	Complete(ctx context.Context, modelID, instructions, prompt string) (string, error)
}

// Result is the outcome of one model call. Err is set on failure; the
// failure is never folded into Content.
type Result struct {
	Model   string `json:"model"`
	Content string `json:"content,omitempty"`
	Err     error  `json:"-"`
}

// Runner issues one request per enabled model, strictly sequentially and in
// registry enumeration order. There is no overall deadline beyond each
// call's own timeout, and no early return: every enabled model is attempted.
type Runner struct {
	Fetcher Fetcher
	OnStart func(displayName string)
	Log     func(string)
}

// OrderEnabled filters the given display names down to registered models
// and returns them in registry enumeration order, the order fan-out
// requests are issued in.
func OrderEnabled(enabled []string) []string {
	selected := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		selected[name] = true
	}
	var out []string
	for _, m := range registry.All() {
		if selected[m.DisplayName] {
			out = append(out, m.DisplayName)
		}
	}
	return out
}

// Run fans the prompt out to the enabled models and returns exactly one
// Result per enabled model, success or failure.
func (r *Runner) Run(ctx context.Context, enabled []string, prompt, instructions string) ([]Result, error) {
	ordered := OrderEnabled(enabled)
	if len(ordered) == 0 {
		return nil, ErrNoModels
	}

	results := make([]Result, 0, len(ordered))
	for _, name := range ordered {
		m, _ := registry.Lookup(name)
		if r.OnStart != nil {
			r.OnStart(m.DisplayName)
		}
		if r.Log != nil {
			r.Log(fmt.Sprintf("fetching %s (%s)", m.DisplayName, m.ID))
		}
		content, err := r.Fetcher.Complete(ctx, m.ID, instructions, prompt)
		if err != nil && r.Log != nil {
			r.Log(fmt.Sprintf("%s failed: %v", m.DisplayName, err))
		}
		results = append(results, Result{Model: m.DisplayName, Content: content, Err: err})
	}
	return results, nil
}
