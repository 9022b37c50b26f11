package drive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/oauth2"
)

// Credentials is the stored Drive credential record for the filing account.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	RootFolderID string
}

// CredentialSource loads and persists the filing account's tokens.
type CredentialSource interface {
	Credentials(ctx context.Context) (*Credentials, error)
	SaveTokens(token *oauth2.Token) error
}

// Uploader files proposal attachments into Drive using stored credentials.
// Uploads are serialized with a mutex so two concurrent refreshes cannot
// clobber the persisted token pair.
type Uploader struct {
	creds    CredentialSource
	buildAPI func(ctx context.Context, accessToken, refreshToken string, onRefresh TokenUpdateFunc) (API, error)

	mu sync.Mutex
}

func NewUploader(service *Service, creds CredentialSource) *Uploader {
	return &Uploader{
		creds:    creds,
		buildAPI: service.GetDriveAPI,
	}
}

// UploadRequest describes one attachment to file.
type UploadRequest struct {
	ProjectName      string
	Trade            string
	Company          string
	OriginalFilename string
	Data             []byte
}

// Upload runs the placement sequence with stored credentials. Auth failures
// get one extra full attempt with freshly loaded tokens; any remaining
// failure comes back as a structured result, never an escaped error.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest) *UploadResult {
	u.mu.Lock()
	defer u.mu.Unlock()

	const maxAttempts = 2
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := u.attempt(ctx, req)
		if err == nil {
			return result
		}
		lastErr = err
		log.Printf("[ERROR] drive upload attempt %d/%d failed: %v", attempt, maxAttempts, err)

		if !IsAuthError(err) {
			break
		}
	}

	return &UploadResult{
		Success:     false,
		ProjectName: req.ProjectName,
		Err:         fmt.Sprintf("failed after %d attempts: %v", maxAttempts, lastErr),
	}
}

func (u *Uploader) attempt(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	creds, err := u.creds.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load Drive credentials: %w", err)
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return nil, errors.New("no Google tokens stored, reconnect Google Drive from the dashboard")
	}
	if creds.RootFolderID == "" {
		return nil, errors.New("no Drive root folder configured")
	}

	api, err := u.buildAPI(ctx, creds.AccessToken, creds.RefreshToken, u.creds.SaveTokens)
	if err != nil {
		return nil, err
	}

	folder, err := ResolveTargetFolder(ctx, api, creds.RootFolderID, req.ProjectName)
	if err != nil {
		return nil, err
	}

	newName := BuildFileName(req.Trade, req.Company, req.OriginalFilename)
	mimeType := MimeTypeFor(req.OriginalFilename)

	file, err := api.UploadFile(ctx, folder.ID, newName, req.Data, mimeType)
	if err != nil && IsAuthError(err) {
		// Retry just the upload with a freshly built client; the folder
		// resolution result is still valid.
		log.Printf("[WARN] auth error during upload, refreshing credentials and retrying: %v", err)
		file, err = u.retryUpload(ctx, folder.ID, newName, req.Data, mimeType)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] uploaded %q to folder %q", newName, folder.Name)
	return &UploadResult{
		Success:        true,
		FileID:         file.ID,
		FileName:       file.Name,
		WebViewLink:    file.WebViewLink,
		WebContentLink: file.WebContentLink,
		FolderID:       folder.ID,
		FolderName:     folder.Name,
		ProjectName:    req.ProjectName,
	}, nil
}

func (u *Uploader) retryUpload(ctx context.Context, folderID, name string, data []byte, mimeType string) (*FileInfo, error) {
	creds, err := u.creds.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to reload Drive credentials: %w", err)
	}

	api, err := u.buildAPI(ctx, creds.AccessToken, creds.RefreshToken, u.creds.SaveTokens)
	if err != nil {
		return nil, err
	}
	return api.UploadFile(ctx, folderID, name, data, mimeType)
}
