package domain

import "time"

// Project represents a construction project being bid. Drive-synced projects
// mirror a folder under the user's configured root folder.
type Project struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"index;not null"`
	Name             string     `json:"name" gorm:"not null"`
	Enabled          bool       `json:"enabled" gorm:"default:false"`
	DriveFolderID    string     `json:"drive_folder_id,omitempty" gorm:"index"`
	DriveFolderName  string     `json:"drive_folder_name,omitempty"`
	IsDriveFolder    bool       `json:"is_drive_folder" gorm:"default:false"`
	LastModifiedTime *time.Time `json:"last_modified_time,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ProjectTrade links a trade to a project, optionally under a custom display
// name.
type ProjectTrade struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ProjectID  string    `json:"project_id" gorm:"uniqueIndex:idx_project_trade;not null"`
	TradeID    string    `json:"trade_id" gorm:"uniqueIndex:idx_project_trade;not null"`
	CustomName string    `json:"custom_name,omitempty"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
}
