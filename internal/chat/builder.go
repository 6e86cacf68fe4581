package chat

// Message is one entry in a chat-completions request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildMessages constructs the message array for one model call: the system
// instruction followed by the latest user prompt. No prior turns are sent;
// every fan-out call is single-shot.
func BuildMessages(instructions, userPrompt string) []Message {
	messages := make([]Message, 0, 2)
	if instructions != "" {
		messages = append(messages, Message{Role: "system", Content: instructions})
	}
	messages = append(messages, Message{Role: "user", Content: userPrompt})
	return messages
}
