package drive

import (
	"context"
	"log"
	"mime"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// UploadResult reports where a proposal ended up. Err is set instead of
// returning an error so callers can record the outcome per attachment.
type UploadResult struct {
	Success        bool   `json:"success"`
	FileID         string `json:"file_id,omitempty"`
	FileName       string `json:"file_name,omitempty"`
	WebViewLink    string `json:"web_view_link,omitempty"`
	WebContentLink string `json:"web_content_link,omitempty"`
	FolderID       string `json:"folder_id,omitempty"`
	FolderName     string `json:"folder_name,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	Err            string `json:"error,omitempty"`
}

// BuildFileName produces the deterministic stored name
// "{trade}_{company}{ext}". Path-hostile characters are replaced and the
// extension falls back to .pdf when the original is missing or not a
// document type.
func BuildFileName(trade, company, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		ext = ".pdf"
	}

	if trade == "" {
		trade = "unknown"
	}
	if company == "" {
		company = "unknown"
	}

	return sanitizeComponent(trade) + "_" + sanitizeComponent(company) + ext
}

func sanitizeComponent(s string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	return strings.TrimSpace(replacer.Replace(s))
}

// ResolveTargetFolder decides which folder a proposal belongs in:
// the fuzzy-matched project folder (preferring its "Sub Bids" child when one
// exists), otherwise a find-or-create "Uncertain Bids" folder under root.
func ResolveTargetFolder(ctx context.Context, api API, rootFolderID, projectName string) (*Folder, error) {
	if projectName != "" {
		folders, err := api.ListFolders(ctx, rootFolderID)
		if err != nil {
			return nil, err
		}

		if matched := BestMatchingFolder(folders, projectName); matched != nil {
			subBids, err := api.FindFolder(ctx, matched.ID, SubBidsFolderName)
			if err != nil {
				return nil, err
			}
			if subBids != nil {
				return subBids, nil
			}
			log.Printf("[WARN] project folder %q has no %q child, filing directly", matched.Name, SubBidsFolderName)
			return matched, nil
		}
	}

	return findOrCreateFolder(ctx, api, rootFolderID, UncertainFolderName)
}

func findOrCreateFolder(ctx context.Context, api API, parentID, name string) (*Folder, error) {
	existing, err := api.FindFolder(ctx, parentID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, err := api.CreateFolder(ctx, parentID, name)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] created %q folder under %s", name, parentID)
	return created, nil
}

// MimeTypeFor guesses the MIME type from the original filename.
func MimeTypeFor(originalFilename string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(originalFilename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return mimeType
}

// IsAuthError reports whether err looks like an expired or revoked
// credential failure from the Drive API.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid credentials") ||
		strings.Contains(msg, "invalid_grant")
}
