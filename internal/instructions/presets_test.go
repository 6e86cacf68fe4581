package instructions

import "testing"

func TestGet(t *testing.T) {
	if p := Get("concise"); p == nil || p.Text == "" {
		t.Error("concise preset should exist with non-empty text")
	}
	if p := Get("default"); p == nil || p.Text != "" {
		t.Error("default preset should exist with empty text")
	}
	if Get("nope") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestList_SortedAndComplete(t *testing.T) {
	names := List()
	if len(names) != len(Presets) {
		t.Fatalf("List returned %d names, want %d", len(names), len(Presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("List not sorted: %v", names)
		}
	}
}
