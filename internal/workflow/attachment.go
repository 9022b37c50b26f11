package workflow

import (
	"context"
	"fmt"
	"log"

	"bidbuddy-backend/internal/proposal/domain"
	"bidbuddy-backend/internal/proposal/usecase"
	"bidbuddy-backend/pkg/drive"
	"bidbuddy-backend/pkg/reducto"
)

// Extractor pulls structured bid data out of a document.
type Extractor interface {
	ExtractFromFile(ctx context.Context, fileData []byte, filename string, activeProjects []string) (*reducto.Extraction, error)
}

// FileUploader files a document into the right Drive folder.
type FileUploader interface {
	Upload(ctx context.Context, req drive.UploadRequest) *drive.UploadResult
}

// ActiveProjects lists the project names offered to the extractor.
type ActiveProjects interface {
	EnabledNames(userID string) ([]string, error)
}

// ProposalTracker persists extraction audits and proposal rows.
type ProposalTracker interface {
	RecordExtraction(extraction *domain.DocumentExtraction)
	Track(in usecase.TrackInput) *usecase.TrackResult
}

// AttachmentProcessor runs each processable attachment through extraction,
// Drive filing and proposal tracking. Attachments are handled sequentially
// and a failure on one never stops the rest.
type AttachmentProcessor struct {
	mail      Mail
	extractor Extractor
	uploader  FileUploader
	projects  ActiveProjects
	tracker   ProposalTracker
}

func NewAttachmentProcessor(mail Mail, extractor Extractor, uploader FileUploader, projects ActiveProjects, tracker ProposalTracker) *AttachmentProcessor {
	return &AttachmentProcessor{
		mail:      mail,
		extractor: extractor,
		uploader:  uploader,
		projects:  projects,
		tracker:   tracker,
	}
}

// Process handles every eligible attachment on the thread for the given user.
func (p *AttachmentProcessor) Process(ctx context.Context, userID, inboxID string, refs []attachmentRef) []ProposalAnalysis {
	activeProjects, err := p.projects.EnabledNames(userID)
	if err != nil {
		log.Printf("[ERROR] failed to list active projects for %s: %v", userID, err)
		activeProjects = nil
	}

	analyses := make([]ProposalAnalysis, 0, len(refs))
	for _, ref := range refs {
		analyses = append(analyses, p.processOne(ctx, userID, inboxID, ref, activeProjects))
	}
	return analyses
}

func (p *AttachmentProcessor) processOne(ctx context.Context, userID, inboxID string, ref attachmentRef, activeProjects []string) ProposalAnalysis {
	analysis := ProposalAnalysis{Filename: ref.Attachment.Filename}

	data, err := p.mail.GetAttachment(ctx, inboxID, ref.MessageID, ref.Attachment.AttachmentID)
	if err != nil {
		analysis.Error = fmt.Sprintf("attachment download failed: %v", err)
		log.Printf("[ERROR] %s: %s", ref.Attachment.Filename, analysis.Error)
		return analysis
	}

	extraction, err := p.extractor.ExtractFromFile(ctx, data, ref.Attachment.Filename, activeProjects)

	audit := &domain.DocumentExtraction{
		AttachmentURL:  ref.Attachment.AttachmentID,
		ActiveProjects: activeProjects,
	}
	if err != nil {
		audit.Error = err.Error()
	} else {
		audit.CompanyName = extraction.CompanyName
		audit.Trade = extraction.Trade
		audit.IsBidProposal = &extraction.IsBidProposal
		audit.ProjectName = extraction.ProjectName
	}
	p.tracker.RecordExtraction(audit)

	if err != nil {
		analysis.Error = fmt.Sprintf("extraction failed: %v", err)
		log.Printf("[ERROR] %s: %s", ref.Attachment.Filename, analysis.Error)
		return analysis
	}

	analysis.IsBidProposal = extraction.IsBidProposal
	analysis.CompanyName = extraction.CompanyName
	analysis.Trade = extraction.Trade
	analysis.ProjectName = extraction.ProjectName

	if !extraction.IsBidProposal {
		log.Printf("attachment %s is not a bid proposal, leaving it alone", ref.Attachment.Filename)
		return analysis
	}
	if extraction.CompanyName == "" || extraction.Trade == "" {
		analysis.Error = "extraction missing company or trade, cannot file"
		log.Printf("[WARN] %s: %s", ref.Attachment.Filename, analysis.Error)
		return analysis
	}

	upload := p.uploader.Upload(ctx, drive.UploadRequest{
		ProjectName:      extraction.ProjectName,
		Trade:            extraction.Trade,
		Company:          extraction.CompanyName,
		OriginalFilename: ref.Attachment.Filename,
		Data:             data,
	})
	if !upload.Success {
		analysis.Error = fmt.Sprintf("drive upload failed: %s", upload.Err)
		log.Printf("[ERROR] %s: %s", ref.Attachment.Filename, analysis.Error)
		return analysis
	}

	analysis.DriveFileID = upload.FileID
	analysis.DriveFileName = upload.FileName
	analysis.FolderName = upload.FolderName

	tracked := p.tracker.Track(usecase.TrackInput{
		UserID:        userID,
		ProjectName:   extraction.ProjectName,
		CompanyName:   extraction.CompanyName,
		RawTrade:      extraction.Trade,
		DriveFileID:   upload.FileID,
		DriveFileName: upload.FileName,
		EmailSource:   "email",
		Metadata: map[string]interface{}{
			"original_filename": ref.Attachment.Filename,
			"folder_name":       upload.FolderName,
			"web_view_link":     upload.WebViewLink,
		},
	})
	for _, e := range tracked.Errors {
		log.Printf("[WARN] tracking %s: %s", ref.Attachment.Filename, e)
	}

	return analysis
}
