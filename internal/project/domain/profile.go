package domain

import "time"

// Profile holds per-user Google Drive configuration and OAuth tokens. The
// token pair is the shared mutable credential record that the drive uploader
// reads and rewrites on refresh.
type Profile struct {
	ID                  string     `json:"id" gorm:"primaryKey"`
	Email               string     `json:"email" gorm:"uniqueIndex;not null"`
	GoogleAccessToken   string     `json:"-"`
	GoogleRefreshToken  string     `json:"-"`
	DriveRootFolderID   string     `json:"drive_root_folder_id,omitempty"`
	DriveRootFolderName string     `json:"drive_root_folder_name,omitempty"`
	LastSyncAt          *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
