package instructions

import "sort"

// Preset is a named, compiled-in instruction text that can be selected for
// a single run without touching the saved configuration.
type Preset struct {
	Name string
	Text string
}

// Presets is the registry of all available instruction presets
var Presets = map[string]Preset{
	"default": {
		Name: "default",
		Text: "",
	},
	"code": {
		Name: "code",
		Text: `You are an expert programming assistant. Provide clear, well-documented code with proper error handling. Prefer production-ready solutions and explain your reasoning when making design decisions.`,
	},
	"concise": {
		Name: "concise",
		Text: `Answer as briefly as possible. Prefer a single short paragraph or a tight bullet list. No preamble, no restating the question.`,
	},
	"eli5": {
		Name: "eli5",
		Text: `Explain like I'm five. Use plain words, short sentences, and one concrete everyday analogy. Avoid jargon entirely.`,
	},
}

// Get returns the preset by name, or nil if it doesn't exist.
func Get(name string) *Preset {
	if p, ok := Presets[name]; ok {
		return &p
	}
	return nil
}

// List returns all preset names sorted alphabetically.
func List() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
