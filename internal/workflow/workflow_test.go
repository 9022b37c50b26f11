package workflow

import (
	"context"
	"testing"

	"bidbuddy-backend/internal/proposal/domain"
	"bidbuddy-backend/internal/proposal/usecase"
	"bidbuddy-backend/pkg/agentmail"
	"bidbuddy-backend/pkg/drive"
	"bidbuddy-backend/pkg/reducto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMail struct {
	threads     map[string]*agentmail.Thread
	attachments map[string][]byte
	sent        []*agentmail.SendMessageRequest
}

func (s *stubMail) GetThread(_ context.Context, _, threadID string) (*agentmail.Thread, error) {
	return s.threads[threadID], nil
}

func (s *stubMail) GetAttachment(_ context.Context, _, _, attachmentID string) ([]byte, error) {
	return s.attachments[attachmentID], nil
}

func (s *stubMail) SendMessage(_ context.Context, _ string, req *agentmail.SendMessageRequest) (*agentmail.SentMessage, error) {
	s.sent = append(s.sent, req)
	return &agentmail.SentMessage{MessageID: "sent-1"}, nil
}

type stubClassifier struct {
	result *Classification
	calls  int
}

func (s *stubClassifier) ClassifyThread(context.Context, *agentmail.Thread) *Classification {
	s.calls++
	return s.result
}

type stubExtractor struct {
	result *reducto.Extraction
	err    error
}

func (s *stubExtractor) ExtractFromFile(context.Context, []byte, string, []string) (*reducto.Extraction, error) {
	return s.result, s.err
}

type stubUploader struct {
	requests []drive.UploadRequest
}

func (s *stubUploader) Upload(_ context.Context, req drive.UploadRequest) *drive.UploadResult {
	s.requests = append(s.requests, req)
	name := drive.BuildFileName(req.Trade, req.Company, req.OriginalFilename)
	return &drive.UploadResult{
		Success:    true,
		FileID:     "drive-file-1",
		FileName:   name,
		FolderID:   "folder-1",
		FolderName: req.ProjectName,
	}
}

type stubProjectNames struct{ names []string }

func (s *stubProjectNames) EnabledNames(string) ([]string, error) { return s.names, nil }

type stubWorkflowTracker struct {
	extractions []*domain.DocumentExtraction
	tracked     []usecase.TrackInput
}

func (s *stubWorkflowTracker) RecordExtraction(e *domain.DocumentExtraction) {
	s.extractions = append(s.extractions, e)
}

func (s *stubWorkflowTracker) Track(in usecase.TrackInput) *usecase.TrackResult {
	s.tracked = append(s.tracked, in)
	return &usecase.TrackResult{ProposalsCreated: 1}
}

type workflowFixture struct {
	mail       *stubMail
	classifier *stubClassifier
	extractor  *stubExtractor
	uploader   *stubUploader
	tracker    *stubWorkflowTracker
	workflow   *Workflow
}

func newWorkflowFixture(classification *Classification, extraction *reducto.Extraction) *workflowFixture {
	f := &workflowFixture{
		mail:       &stubMail{threads: map[string]*agentmail.Thread{}, attachments: map[string][]byte{}},
		classifier: &stubClassifier{result: classification},
		extractor:  &stubExtractor{result: extraction},
		uploader:   &stubUploader{},
		tracker:    &stubWorkflowTracker{},
	}
	processor := NewAttachmentProcessor(f.mail, f.extractor, f.uploader, &stubProjectNames{names: []string{"Panda Express"}}, f.tracker)
	forwarder := NewForwarder(f.mail, "admin@example.com")
	f.workflow = New(f.mail, f.classifier, processor, forwarder, f.tracker, "user-1")
	return f
}

func TestRunSkipsIrrelevantEmail(t *testing.T) {
	f := newWorkflowFixture(&Classification{}, nil)
	f.mail.threads["thread-1"] = &agentmail.Thread{
		ThreadID: "thread-1",
		Subject:  "Your profile was viewed",
		Messages: []agentmail.Message{{MessageID: "msg-1", From: "noreply@social.example", Text: "Someone looked at your profile."}},
	}

	result := f.workflow.Run(context.Background(), &agentmail.Message{
		MessageID: "msg-1", InboxID: "inbox-1", ThreadID: "thread-1",
		From: "noreply@social.example", Subject: "Your profile was viewed",
	})

	assert.Equal(t, ActionSkipped, result.Action)
	assert.Empty(t, f.tracker.tracked)
	assert.Empty(t, f.mail.sent)
}

func TestRunFilesBidProposalAttachment(t *testing.T) {
	f := newWorkflowFixture(
		&Classification{BidProposalIncluded: true},
		&reducto.Extraction{CompanyName: "Acme Plumbing", Trade: "Plumbing", IsBidProposal: true, ProjectName: "Panda Express"},
	)
	f.mail.threads["thread-1"] = &agentmail.Thread{
		ThreadID: "thread-1",
		Subject:  "Bid for Panda Express",
		Messages: []agentmail.Message{{
			MessageID:   "msg-1",
			From:        "estimating@acmeplumbing.com",
			Text:        "Please find our proposal attached.",
			Attachments: []agentmail.Attachment{{AttachmentID: "att-1", Filename: "proposal final.pdf"}},
		}},
	}
	f.mail.attachments["att-1"] = []byte("%PDF-1.4 fake")

	result := f.workflow.Run(context.Background(), &agentmail.Message{
		MessageID: "msg-1", InboxID: "inbox-1", ThreadID: "thread-1",
		From: "estimating@acmeplumbing.com", Subject: "Bid for Panda Express",
	})

	assert.Equal(t, ActionBidProposal, result.Action)
	require.Len(t, result.Attachments, 1)
	assert.Equal(t, "Plumbing_Acme Plumbing.pdf", result.Attachments[0].DriveFileName)
	assert.Empty(t, result.Attachments[0].Error)

	require.Len(t, f.uploader.requests, 1)
	assert.Equal(t, "proposal final.pdf", f.uploader.requests[0].OriginalFilename)

	require.Len(t, f.tracker.extractions, 1)
	require.Len(t, f.tracker.tracked, 1)
	assert.Equal(t, "Panda Express", f.tracker.tracked[0].ProjectName)
	assert.Equal(t, "drive-file-1", f.tracker.tracked[0].DriveFileID)
	assert.Equal(t, "email", f.tracker.tracked[0].EmailSource)
}

func TestRunPrefersBidOverForward(t *testing.T) {
	f := newWorkflowFixture(
		&Classification{BidProposalIncluded: true, ShouldForward: true},
		&reducto.Extraction{CompanyName: "Acme", Trade: "Concrete", IsBidProposal: true, ProjectName: "Panda Express"},
	)
	f.mail.threads["thread-1"] = &agentmail.Thread{
		ThreadID: "thread-1",
		Messages: []agentmail.Message{{
			MessageID:   "msg-1",
			Attachments: []agentmail.Attachment{{AttachmentID: "att-1", Filename: "bid.pdf"}},
		}},
	}
	f.mail.attachments["att-1"] = []byte("data")

	result := f.workflow.Run(context.Background(), &agentmail.Message{
		MessageID: "msg-1", InboxID: "inbox-1", ThreadID: "thread-1",
	})

	assert.Equal(t, ActionBidProposal, result.Action)
	assert.Empty(t, f.mail.sent)
}

func TestRunForwardsRelevantEmail(t *testing.T) {
	f := newWorkflowFixture(&Classification{ShouldForward: true}, nil)
	f.mail.threads["thread-1"] = &agentmail.Thread{
		ThreadID: "thread-1",
		Messages: []agentmail.Message{{MessageID: "msg-1", From: "owner@client.example", Text: "Can we discuss the schedule?"}},
	}

	result := f.workflow.Run(context.Background(), &agentmail.Message{
		MessageID: "msg-1", InboxID: "inbox-1", ThreadID: "thread-1",
		From: "owner@client.example", Subject: "Schedule question", Text: "Can we discuss the schedule?",
	})

	assert.Equal(t, ActionForwarded, result.Action)
	assert.True(t, result.Forwarded)
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, []string{"admin@example.com"}, f.mail.sent[0].To)
	assert.Equal(t, "Fwd: Schedule question", f.mail.sent[0].Subject)
}

func TestRunBuildingConnectedSkipsClassifier(t *testing.T) {
	f := newWorkflowFixture(&Classification{BidProposalIncluded: true}, nil)

	html := `<p><strong>Acme Drywall</strong> has submitted a proposal.</p>
<p>Trade: <span>Drywall</span></p>
<a href="https://app.buildingconnected.com/files/download/abc123">Download</a>`

	result := f.workflow.Run(context.Background(), &agentmail.Message{
		MessageID: "msg-1", InboxID: "inbox-1", ThreadID: "thread-1",
		From:    "BuildingConnected <team@buildingconnected.com>",
		Subject: "Proposal Submitted - Yogurtland #42",
		HTML:    html,
	})

	assert.Equal(t, ActionBuildingConnected, result.Action)
	assert.Zero(t, f.classifier.calls)

	require.NotNil(t, result.BuildingConnected)
	assert.Equal(t, "Yogurtland #42", result.BuildingConnected.ProjectName)
	assert.Equal(t, "Acme Drywall", result.BuildingConnected.CompanyName)
	assert.Equal(t, "Drywall", result.BuildingConnected.Trade)
	assert.Equal(t, []string{"https://app.buildingconnected.com/files/download/abc123"}, result.BuildingConnected.DownloadLinks)

	require.Len(t, f.tracker.tracked, 1)
	assert.Equal(t, "buildingconnected", f.tracker.tracked[0].EmailSource)
	assert.Equal(t, "Yogurtland #42", f.tracker.tracked[0].ProjectName)
}

func TestRunDoesNotFileNonBidAttachment(t *testing.T) {
	f := newWorkflowFixture(
		&Classification{BidProposalIncluded: true},
		&reducto.Extraction{IsBidProposal: false},
	)
	f.mail.threads["thread-1"] = &agentmail.Thread{
		ThreadID: "thread-1",
		Messages: []agentmail.Message{{
			MessageID:   "msg-1",
			Attachments: []agentmail.Attachment{{AttachmentID: "att-1", Filename: "brochure.pdf"}},
		}},
	}
	f.mail.attachments["att-1"] = []byte("data")

	result := f.workflow.Run(context.Background(), &agentmail.Message{
		MessageID: "msg-1", InboxID: "inbox-1", ThreadID: "thread-1",
	})

	assert.Equal(t, ActionBidProposal, result.Action)
	require.Len(t, result.Attachments, 1)
	assert.False(t, result.Attachments[0].IsBidProposal)
	assert.Empty(t, f.uploader.requests)
	assert.Empty(t, f.tracker.tracked)
	// The audit row is still written.
	assert.Len(t, f.tracker.extractions, 1)
}
