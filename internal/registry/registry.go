package registry

// Model is one selectable entry: a human-readable name and the
// provider-specific identifier sent to the Groq API.
type Model struct {
	DisplayName string
	ID          string
}

// models is the fixed set of selectable models. Slice order is significant:
// fan-out requests are issued in this order.
var models = []Model{
	{DisplayName: "OpenAI GPT-OSS 120B", ID: "openai/gpt-oss-120b"},
	{DisplayName: "Llama 3.3 70B Versatile", ID: "llama-3.3-70b-versatile"},
	{DisplayName: "DeepSeek R1 Distill 70B", ID: "deepseek-r1-distill-llama-70b"},
	{DisplayName: "Kimi K2 Instruct", ID: "moonshotai/kimi-k2-instruct"},
	{DisplayName: "Qwen3 32B", ID: "qwen/qwen3-32b"},
}

// All returns every registered model in enumeration order.
func All() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Names returns the display names of all registered models in enumeration order.
func Names() []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.DisplayName
	}
	return names
}

// Lookup resolves a display name to its model entry.
func Lookup(displayName string) (Model, bool) {
	for _, m := range models {
		if m.DisplayName == displayName {
			return m, true
		}
	}
	return Model{}, false
}

// Contains reports whether the display name is a registered model.
func Contains(displayName string) bool {
	_, ok := Lookup(displayName)
	return ok
}
