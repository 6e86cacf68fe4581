package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/earlysvahn/chatlpu/internal/fanout"
)

// Response is one model's answer within an assistant turn. Exactly one of
// Content or Err is meaningful; failures are never disguised as answers.
type Response struct {
	Content string `json:"content,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Failed reports whether this model call ended in an error.
func (r Response) Failed() bool { return r.Err != "" }

// Turn is one transcript entry: a user prompt, or an assistant round holding
// one response per model that was enabled when the prompt was submitted.
type Turn struct {
	ID        string              `json:"id"`
	Role      string              `json:"role"`
	Content   string              `json:"content"`
	Responses map[string]Response `json:"responses,omitempty"`
	Time      time.Time           `json:"time"`
}

// Transcript is the in-memory, append-only conversation state for one
// session. It is never persisted; Clear is the only deletion operation.
type Transcript struct {
	turns []Turn
}

func New() *Transcript {
	return &Transcript{turns: []Turn{}}
}

// AppendUser appends a user turn with the submitted prompt.
func (t *Transcript) AppendUser(prompt string) Turn {
	turn := Turn{
		ID:      uuid.NewString(),
		Role:    "user",
		Content: prompt,
		Time:    time.Now().UTC(),
	}
	t.turns = append(t.turns, turn)
	return turn
}

// AppendAssistant appends an assistant turn built from one fan-out round.
// The responses map is keyed by model display name and holds exactly one
// entry per result; it is never edited afterward.
func (t *Transcript) AppendAssistant(results []fanout.Result) Turn {
	responses := make(map[string]Response, len(results))
	for _, res := range results {
		if res.Err != nil {
			responses[res.Model] = Response{Err: res.Err.Error()}
		} else {
			responses[res.Model] = Response{Content: res.Content}
		}
	}
	turn := Turn{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   fmt.Sprintf("Responses generated from %d models", len(results)),
		Responses: responses,
		Time:      time.Now().UTC(),
	}
	t.turns = append(t.turns, turn)
	return turn
}

// Turns returns the transcript in submission order.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) Len() int { return len(t.turns) }

// Clear empties the transcript. Irreversible within the session.
func (t *Transcript) Clear() {
	t.turns = t.turns[:0]
}
