package workflow

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"bidbuddy-backend/pkg/agentmail"
	"bidbuddy-backend/pkg/llm"
)

// Mail is the slice of the AgentMail client the pipeline needs.
type Mail interface {
	GetThread(ctx context.Context, inboxID, threadID string) (*agentmail.Thread, error)
	GetAttachment(ctx context.Context, inboxID, messageID, attachmentID string) ([]byte, error)
	SendMessage(ctx context.Context, inboxID string, req *agentmail.SendMessageRequest) (*agentmail.SentMessage, error)
}

const (
	maxPromptMessages = 5
	maxMessageChars   = 500
)

// Classifier asks the LLM whether a thread contains a bid proposal and
// whether it should be forwarded to the admin inbox.
type Classifier struct {
	mail       Mail
	completer  llm.Completer
	maxRetries int
}

func NewClassifier(mail Mail, completer llm.Completer, maxRetries int) *Classifier {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Classifier{mail: mail, completer: completer, maxRetries: maxRetries}
}

// eligibleAttachment reports whether a filename is a document the extractor
// can process.
func eligibleAttachment(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc":
		return true
	}
	return false
}

// attachmentRef ties an attachment back to the message it arrived on.
type attachmentRef struct {
	MessageID  string
	Attachment agentmail.Attachment
}

// eligibleAttachments collects processable attachments across the whole
// thread in the order they appear.
func eligibleAttachments(thread *agentmail.Thread) []attachmentRef {
	var refs []attachmentRef
	for _, msg := range thread.Messages {
		for _, att := range msg.Attachments {
			if eligibleAttachment(att.Filename) {
				refs = append(refs, attachmentRef{MessageID: msg.MessageID, Attachment: att})
			}
		}
	}
	return refs
}

// Classify fetches the thread and runs the LLM classification. It never
// returns an error: any failure produces the safe default of both flags
// false with Err recording what went wrong.
func (c *Classifier) Classify(ctx context.Context, inboxID, threadID string) *Classification {
	thread, err := c.mail.GetThread(ctx, inboxID, threadID)
	if err != nil {
		log.Printf("[ERROR] failed to fetch thread %s for classification: %v", threadID, err)
		return &Classification{Err: fmt.Sprintf("thread fetch failed: %v", err)}
	}
	return c.ClassifyThread(ctx, thread)
}

// ClassifyThread classifies an already fetched thread.
func (c *Classifier) ClassifyThread(ctx context.Context, thread *agentmail.Thread) *Classification {
	attachments := eligibleAttachments(thread)

	var out struct {
		BidProposalIncluded bool `json:"bid_proposal_included"`
		ShouldForward       bool `json:"should_forward"`
	}
	segments := []string{classificationPrompt(thread, attachments)}
	if err := llm.JSONWithRetry(ctx, c.completer, segments, c.maxRetries, &out); err != nil {
		log.Printf("[ERROR] classification failed for thread %s: %v", thread.ThreadID, err)
		return &Classification{Err: err.Error()}
	}

	result := &Classification{
		BidProposalIncluded: out.BidProposalIncluded,
		ShouldForward:       out.ShouldForward,
	}
	// A bid proposal requires a document we can actually process. Without
	// one the classifier's verdict is overridden.
	if result.BidProposalIncluded && len(attachments) == 0 {
		log.Printf("[WARN] thread %s classified as bid proposal but has no processable attachment, overriding", thread.ThreadID)
		result.BidProposalIncluded = false
	}
	return result
}

func classificationPrompt(thread *agentmail.Thread, attachments []attachmentRef) string {
	var b strings.Builder
	b.WriteString("You are an email classifier for a construction general contractor.\n")
	b.WriteString("Decide two things about the email thread below:\n")
	b.WriteString("1. bid_proposal_included: does the thread contain a subcontractor bid proposal document?\n")
	b.WriteString("2. should_forward: is this a business-relevant email the office should see (not marketing, spam or automated notifications)?\n\n")
	b.WriteString(fmt.Sprintf("Subject: %s\n\n", thread.Subject))

	messages := thread.Messages
	if len(messages) > maxPromptMessages {
		messages = messages[len(messages)-maxPromptMessages:]
	}
	for _, msg := range messages {
		body := msg.Text
		if body == "" {
			body = msg.HTML
		}
		if runes := []rune(body); len(runes) > maxMessageChars {
			body = string(runes[:maxMessageChars]) + "..."
		}
		b.WriteString(fmt.Sprintf("From: %s\n%s\n---\n", msg.From, body))
	}

	if len(attachments) > 0 {
		b.WriteString("\nAttachments:\n")
		for _, ref := range attachments {
			b.WriteString(fmt.Sprintf("- %s\n", ref.Attachment.Filename))
		}
	} else {
		b.WriteString("\nAttachments: none\n")
	}

	b.WriteString("\nRespond with ONLY a JSON object: {\"bid_proposal_included\": bool, \"should_forward\": bool}")
	return b.String()
}
