package workflow

import (
	"context"
	"fmt"
	"log"

	"bidbuddy-backend/internal/proposal/usecase"
	"bidbuddy-backend/pkg/agentmail"
)

// ThreadClassifier decides how an email thread should be routed.
type ThreadClassifier interface {
	ClassifyThread(ctx context.Context, thread *agentmail.Thread) *Classification
}

// Workflow routes an inbound email through the pipeline. All collaborators
// are wired once at startup.
type Workflow struct {
	mail       Mail
	classifier ThreadClassifier
	processor  *AttachmentProcessor
	forwarder  *Forwarder
	tracker    ProposalTracker
	userID     string
}

func New(mail Mail, classifier ThreadClassifier, processor *AttachmentProcessor, forwarder *Forwarder, tracker ProposalTracker, userID string) *Workflow {
	return &Workflow{
		mail:       mail,
		classifier: classifier,
		processor:  processor,
		forwarder:  forwarder,
		tracker:    tracker,
		userID:     userID,
	}
}

// Run processes one inbound message. BuildingConnected notifications take a
// dedicated path that skips classification entirely; everything else is
// classified and routed, with bid handling taking priority over forwarding.
func (w *Workflow) Run(ctx context.Context, msg *agentmail.Message) *Result {
	if IsBuildingConnectedNotification(msg.From, msg.Subject) {
		return w.runBuildingConnected(msg)
	}

	thread, err := w.mail.GetThread(ctx, msg.InboxID, msg.ThreadID)
	if err != nil {
		log.Printf("[ERROR] failed to fetch thread %s: %v", msg.ThreadID, err)
		return &Result{Action: ActionSkipped, Detail: fmt.Sprintf("thread fetch failed: %v", err)}
	}

	classification := w.classifier.ClassifyThread(ctx, thread)

	switch {
	case classification.BidProposalIncluded:
		analyses := w.processor.Process(ctx, w.userID, msg.InboxID, eligibleAttachments(thread))
		return &Result{
			Action:         ActionBidProposal,
			Classification: classification,
			Attachments:    analyses,
		}
	case classification.ShouldForward:
		result := &Result{Action: ActionForwarded, Classification: classification}
		if err := w.forwarder.Forward(ctx, msg); err != nil {
			log.Printf("[ERROR] %v", err)
			result.Detail = err.Error()
		} else {
			result.Forwarded = true
		}
		return result
	default:
		return &Result{Action: ActionSkipped, Classification: classification}
	}
}

func (w *Workflow) runBuildingConnected(msg *agentmail.Message) *Result {
	data := ExtractBuildingConnected(msg.Subject, msg.HTML, msg.Text)
	result := &Result{Action: ActionBuildingConnected, BuildingConnected: data}

	if data.CompanyName == "" || data.Trade == "" {
		result.Detail = "notification parsed without company or trade, nothing tracked"
		log.Printf("[WARN] buildingconnected message %s: %s", msg.MessageID, result.Detail)
		return result
	}

	tracked := w.tracker.Track(usecase.TrackInput{
		UserID:      w.userID,
		ProjectName: data.ProjectName,
		CompanyName: data.CompanyName,
		RawTrade:    data.Trade,
		EmailSource: "buildingconnected",
		Metadata: map[string]interface{}{
			"download_links": data.DownloadLinks,
			"message_id":     msg.MessageID,
		},
	})
	if len(tracked.Errors) > 0 {
		result.Detail = fmt.Sprintf("tracking errors: %v", tracked.Errors)
	}
	return result
}
