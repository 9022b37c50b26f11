package agentmail

// Attachment is an email attachment reference. Content is fetched separately
// through GetAttachment.
type Attachment struct {
	AttachmentID string `json:"attachment_id"`
	Filename     string `json:"filename"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
	Inline       bool   `json:"inline"`
}

// Message is a single email message in a thread.
type Message struct {
	MessageID   string       `json:"message_id"`
	InboxID     string       `json:"inbox_id"`
	ThreadID    string       `json:"thread_id"`
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	Text        string       `json:"text"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments"`
}

// Thread is a conversation of messages, oldest first.
type Thread struct {
	ThreadID string    `json:"thread_id"`
	InboxID  string    `json:"inbox_id"`
	Subject  string    `json:"subject"`
	Messages []Message `json:"messages"`
}

// SendMessageRequest is the payload for sending a new message from an inbox.
type SendMessageRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject,omitempty"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

// SentMessage is the provider's acknowledgement of a sent message.
type SentMessage struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
}
