package workflow

import (
	"context"
	"fmt"
	"log"

	"bidbuddy-backend/pkg/agentmail"
)

// Forwarder relays business-relevant emails to the admin inbox.
type Forwarder struct {
	mail       Mail
	adminEmail string
}

func NewForwarder(mail Mail, adminEmail string) *Forwarder {
	return &Forwarder{mail: mail, adminEmail: adminEmail}
}

// Forward sends a copy of the message to the configured admin address.
func (f *Forwarder) Forward(ctx context.Context, msg *agentmail.Message) error {
	if f.adminEmail == "" {
		return fmt.Errorf("no admin email configured, cannot forward message %s", msg.MessageID)
	}

	subject := "Fwd: " + msg.Subject
	body := fmt.Sprintf("Forwarded message from %s:\n\n%s", msg.From, msg.Text)

	sent, err := f.mail.SendMessage(ctx, msg.InboxID, &agentmail.SendMessageRequest{
		To:      []string{f.adminEmail},
		Subject: subject,
		Text:    body,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to forward message %s: %w", msg.MessageID, err)
	}

	log.Printf("forwarded message %s to %s as %s", msg.MessageID, f.adminEmail, sent.MessageID)
	return nil
}
