package chat

import "testing"

func TestBuildMessages_SystemThenUser(t *testing.T) {
	msgs := BuildMessages("Be terse.", "hello")
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "Be terse." {
		t.Errorf("first message = %+v, want system instruction", msgs[0])
	}
	if msgs[1].Role != "user" || msgs[1].Content != "hello" {
		t.Errorf("second message = %+v, want user prompt", msgs[1])
	}
}

func TestBuildMessages_NoInstructions(t *testing.T) {
	msgs := BuildMessages("", "hello")
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Role != "user" {
		t.Errorf("role = %q, want user", msgs[0].Role)
	}
}
