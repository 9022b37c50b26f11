package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bidbuddy-backend/internal/project/domain"
	"bidbuddy-backend/internal/project/repository"
	"bidbuddy-backend/pkg/drive"

	"golang.org/x/oauth2"
)

// ErrNoRootFolder is returned when a sync is requested before a Drive root
// folder has been configured.
var ErrNoRootFolder = errors.New("no root folder configured")

// SyncResult summarizes one folder-to-project sync run.
type SyncResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Removed int    `json:"removed"`
	Total   int    `json:"total"`
}

// DriveSyncUsecase mirrors the folders under a user's Drive root folder into
// project rows: new folders become projects, renamed folders rename their
// project, deleted folders remove it.
type DriveSyncUsecase struct {
	profiles repository.ProfileRepository
	projects repository.ProjectRepository
	buildAPI func(ctx context.Context, profile *domain.Profile) (drive.API, error)
}

func NewDriveSyncUsecase(profiles repository.ProfileRepository, projects repository.ProjectRepository, driveService *drive.Service) *DriveSyncUsecase {
	uc := &DriveSyncUsecase{
		profiles: profiles,
		projects: projects,
	}
	uc.buildAPI = func(ctx context.Context, profile *domain.Profile) (drive.API, error) {
		return driveService.GetDriveAPI(ctx, profile.GoogleAccessToken, profile.GoogleRefreshToken, func(t *oauth2.Token) error {
			if t.RefreshToken != "" {
				return profiles.UpdateTokens(profile.ID, t.AccessToken, t.RefreshToken)
			}
			return profiles.UpdateAccessToken(profile.ID, t.AccessToken)
		})
	}
	return uc
}

// SyncFolders runs a full folder sync for the user. Auth failures come back
// as a failed SyncResult rather than an error so the handler can return them
// with sync counters zeroed.
func (uc *DriveSyncUsecase) SyncFolders(ctx context.Context, userID string) (*SyncResult, error) {
	profile, err := uc.profiles.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.DriveRootFolderID == "" {
		return nil, ErrNoRootFolder
	}

	api, err := uc.buildAPI(ctx, profile)
	if err != nil {
		return nil, err
	}

	folders, err := api.ListFolders(ctx, profile.DriveRootFolderID)
	if err != nil {
		if drive.IsAuthError(err) {
			return &SyncResult{Success: false, Error: "Google Drive authentication expired. Please reconnect."}, nil
		}
		return nil, fmt.Errorf("Google Drive API error: %w", err)
	}

	existing, err := uc.projects.FindDriveProjects(userID)
	if err != nil {
		return nil, err
	}
	existingByFolder := make(map[string]*domain.Project, len(existing))
	for _, p := range existing {
		existingByFolder[p.DriveFolderID] = p
	}

	result := &SyncResult{Success: true}
	seen := make(map[string]bool, len(folders))

	for _, folder := range folders {
		seen[folder.ID] = true
		modifiedTime := parseDriveTime(folder.ModifiedTime)

		if project, ok := existingByFolder[folder.ID]; ok {
			if project.Name != folder.Name {
				if err := uc.projects.RenameDriveProject(project.ID, folder.Name, modifiedTime); err != nil {
					return nil, err
				}
				result.Updated++
			}
			continue
		}

		err := uc.projects.Create(&domain.Project{
			UserID:           userID,
			Name:             folder.Name,
			DriveFolderID:    folder.ID,
			DriveFolderName:  folder.Name,
			IsDriveFolder:    true,
			Enabled:          false,
			LastModifiedTime: modifiedTime,
		})
		if err != nil {
			return nil, err
		}
		result.Added++
	}

	for folderID, project := range existingByFolder {
		if !seen[folderID] {
			if err := uc.projects.Delete(project.ID); err != nil {
				return nil, err
			}
			result.Removed++
		}
	}

	result.Total = len(seen)

	if err := uc.profiles.TouchLastSync(userID, time.Now().UTC()); err != nil {
		log.Printf("[WARN] failed to record sync time for %s: %v", userID, err)
	}

	return result, nil
}

// ListFolders lists Drive folders for the folder picker. parentID may be
// empty to search across the whole drive.
func (uc *DriveSyncUsecase) ListFolders(ctx context.Context, userID, parentID string) ([]drive.Folder, error) {
	api, err := uc.apiForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return api.ListFolders(ctx, parentID)
}

// SearchFolders searches Drive folders by name.
func (uc *DriveSyncUsecase) SearchFolders(ctx context.Context, userID, query string) ([]drive.Folder, error) {
	api, err := uc.apiForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return api.SearchFolders(ctx, query)
}

func (uc *DriveSyncUsecase) apiForUser(ctx context.Context, userID string) (drive.API, error) {
	profile, err := uc.profiles.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("please reconnect Google Drive")
	}
	return uc.buildAPI(ctx, profile)
}

func parseDriveTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
