// Package drive wraps the Google Drive v3 API with the folder matching and
// file placement rules used for filing bid proposals.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	googledrive "google.golang.org/api/drive/v3"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Folder is a Drive folder reference.
type Folder struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modified_time,omitempty"`
}

// FileRef is a lightweight file listing entry.
type FileRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedTime  string `json:"created_time,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
}

// FileInfo describes an uploaded Drive file.
type FileInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WebViewLink    string `json:"web_view_link"`
	WebContentLink string `json:"web_content_link"`
}

// API is the subset of Drive operations the placement policy needs. The
// concrete implementation talks to Drive v3; tests substitute a fake.
type API interface {
	ListFolders(ctx context.Context, parentID string) ([]Folder, error)
	SearchFolders(ctx context.Context, nameQuery string) ([]Folder, error)
	FindFolder(ctx context.Context, parentID, name string) (*Folder, error)
	CreateFolder(ctx context.Context, parentID, name string) (*Folder, error)
	ListPDFs(ctx context.Context, folderID string) ([]FileRef, error)
	UploadFile(ctx context.Context, folderID, name string, data []byte, mimeType string) (*FileInfo, error)
}

// googleAPI implements API on a Drive v3 service.
type googleAPI struct {
	srv *googledrive.Service
}

// folderListQuery builds the files.list query. Without a parent the query
// spans the whole drive, matching the folder picker's initial view.
func folderListQuery(parentID string) string {
	query := fmt.Sprintf("mimeType='%s' and trashed=false", folderMimeType)
	if parentID != "" {
		query = fmt.Sprintf("'%s' in parents and %s", escapeQuery(parentID), query)
	}
	return query
}

func (g *googleAPI) ListFolders(ctx context.Context, parentID string) ([]Folder, error) {
	query := folderListQuery(parentID)

	var folders []Folder
	pageToken := ""
	for {
		call := g.srv.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, modifiedTime)").
			PageSize(100).
			OrderBy("name").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list folders: %w", err)
		}
		for _, f := range result.Files {
			folders = append(folders, Folder{ID: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime})
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return folders, nil
}

func (g *googleAPI) SearchFolders(ctx context.Context, nameQuery string) ([]Folder, error) {
	query := fmt.Sprintf("name contains '%s' and mimeType='%s' and trashed=false", escapeQuery(nameQuery), folderMimeType)

	result, err := g.srv.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id, name, modifiedTime)").
		PageSize(50).
		OrderBy("name").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to search folders: %w", err)
	}

	folders := make([]Folder, 0, len(result.Files))
	for _, f := range result.Files {
		folders = append(folders, Folder{ID: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime})
	}
	return folders, nil
}

func (g *googleAPI) ListPDFs(ctx context.Context, folderID string) ([]FileRef, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='application/pdf' and trashed=false", escapeQuery(folderID))

	result, err := g.srv.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id, name, createdTime, modifiedTime)").
		PageSize(1000).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list files: %w", err)
	}

	files := make([]FileRef, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, FileRef{ID: f.Id, Name: f.Name, CreatedTime: f.CreatedTime, ModifiedTime: f.ModifiedTime})
	}
	return files, nil
}

func (g *googleAPI) FindFolder(ctx context.Context, parentID, name string) (*Folder, error) {
	query := fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false",
		escapeQuery(parentID), escapeQuery(name), folderMimeType)

	result, err := g.srv.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to find folder %q: %w", name, err)
	}
	if len(result.Files) == 0 {
		return nil, nil
	}
	return &Folder{ID: result.Files[0].Id, Name: result.Files[0].Name}, nil
}

func (g *googleAPI) CreateFolder(ctx context.Context, parentID, name string) (*Folder, error) {
	created, err := g.srv.Files.Create(&googledrive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).
		Context(ctx).
		Fields("id, name").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create folder %q: %w", name, err)
	}
	return &Folder{ID: created.Id, Name: created.Name}, nil
}

func (g *googleAPI) UploadFile(ctx context.Context, folderID, name string, data []byte, mimeType string) (*FileInfo, error) {
	meta := &googledrive.File{Name: name}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := g.srv.Files.Create(meta).
		Context(ctx).
		Media(bytes.NewReader(data)).
		Fields("id, name, webViewLink, webContentLink").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to upload file %q: %w", name, err)
	}
	return &FileInfo{
		ID:             created.Id,
		Name:           created.Name,
		WebViewLink:    created.WebViewLink,
		WebContentLink: created.WebContentLink,
	}, nil
}

// escapeQuery escapes single quotes for Drive query strings.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
