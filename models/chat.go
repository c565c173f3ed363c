package models

// Chat message senders
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry of a chat transcript
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// QuickQuestion is a suggested prompt shown under the chat input
type QuickQuestion struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}
