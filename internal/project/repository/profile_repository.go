package repository

import (
	"time"

	"bidbuddy-backend/internal/project/domain"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// FindByID finds a profile by user ID
	FindByID(id string) (*domain.Profile, error)

	// FindByEmail finds a profile by email address
	FindByEmail(email string) (*domain.Profile, error)

	// SetRootFolder stores the Drive root folder, creating the profile if needed
	SetRootFolder(id, email, folderID, folderName string) error

	// UpdateTokens rewrites the stored Google token pair
	UpdateTokens(id, accessToken, refreshToken string) error

	// UpdateAccessToken rewrites only the access token (refresh keeps the old pair)
	UpdateAccessToken(id, accessToken string) error

	// TouchLastSync records a completed folder sync
	TouchLastSync(id string, at time.Time) error
}

// gormProfileRepository implements ProfileRepository using GORM
type gormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository
func NewGormProfileRepository(db *gorm.DB) ProfileRepository {
	db.AutoMigrate(&domain.Profile{})
	return &gormProfileRepository{db: db}
}

func (r *gormProfileRepository) FindByID(id string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByEmail(email string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormProfileRepository) SetRootFolder(id, email, folderID, folderName string) error {
	existing, err := r.FindByID(id)
	if err != nil {
		return err
	}

	if existing == nil {
		return r.db.Create(&domain.Profile{
			ID:                  id,
			Email:               email,
			DriveRootFolderID:   folderID,
			DriveRootFolderName: folderName,
			CreatedAt:           time.Now(),
			UpdatedAt:           time.Now(),
		}).Error
	}

	return r.db.Model(&domain.Profile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"drive_root_folder_id":   folderID,
			"drive_root_folder_name": folderName,
			"updated_at":             time.Now(),
		}).Error
}

func (r *gormProfileRepository) UpdateTokens(id, accessToken, refreshToken string) error {
	return r.db.Model(&domain.Profile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"google_access_token":  accessToken,
			"google_refresh_token": refreshToken,
			"updated_at":           time.Now(),
		}).Error
}

func (r *gormProfileRepository) UpdateAccessToken(id, accessToken string) error {
	return r.db.Model(&domain.Profile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"google_access_token": accessToken,
			"updated_at":          time.Now(),
		}).Error
}

func (r *gormProfileRepository) TouchLastSync(id string, at time.Time) error {
	return r.db.Model(&domain.Profile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_sync_at": at,
			"updated_at":   time.Now(),
		}).Error
}
