package repository

import (
	"strings"
	"time"

	"bidbuddy-backend/internal/project/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormProjectRepository implements ProjectRepository using GORM
type gormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GORM-based ProjectRepository
func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	db.AutoMigrate(&domain.Project{})
	return &gormProjectRepository{db: db}
}

func (r *gormProjectRepository) Create(project *domain.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	return r.db.Create(project).Error
}

func (r *gormProjectRepository) FindByID(id, userID string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *gormProjectRepository) FindByUser(userID string) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&projects).Error
	return projects, err
}

func (r *gormProjectRepository) FindByExactName(userID, name string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *gormProjectRepository) EnabledNames(userID string) ([]string, error) {
	var names []string
	err := r.db.Model(&domain.Project{}).
		Where("user_id = ? AND enabled = ?", userID, true).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}

func (r *gormProjectRepository) SetEnabled(id, userID string, enabled bool) (bool, error) {
	result := r.db.Model(&domain.Project{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"enabled":    enabled,
			"updated_at": time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *gormProjectRepository) FindDriveProjects(userID string) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := r.db.Where("user_id = ? AND is_drive_folder = ?", userID, true).Find(&projects).Error
	return projects, err
}

func (r *gormProjectRepository) RenameDriveProject(id, name string, modifiedTime *time.Time) error {
	return r.db.Model(&domain.Project{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":               name,
			"drive_folder_name":  name,
			"last_modified_time": modifiedTime,
			"updated_at":         time.Now(),
		}).Error
}

func (r *gormProjectRepository) Delete(id string) error {
	return r.db.Delete(&domain.Project{}, "id = ?", id).Error
}

// gormProjectTradeRepository implements ProjectTradeRepository using GORM
type gormProjectTradeRepository struct {
	db *gorm.DB
}

// NewGormProjectTradeRepository creates a new GORM-based ProjectTradeRepository
func NewGormProjectTradeRepository(db *gorm.DB) ProjectTradeRepository {
	db.AutoMigrate(&domain.ProjectTrade{})
	return &gormProjectTradeRepository{db: db}
}

func (r *gormProjectTradeRepository) Add(projectTrade *domain.ProjectTrade) error {
	if projectTrade.ID == "" {
		projectTrade.ID = uuid.New().String()
	}
	projectTrade.CreatedAt = time.Now()

	err := r.db.Create(projectTrade).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate") {
		// Link already exists, that's fine
		return nil
	}
	return err
}

func (r *gormProjectTradeRepository) ListByProject(projectID string) ([]*domain.ProjectTrade, error) {
	var links []*domain.ProjectTrade
	err := r.db.Where("project_id = ?", projectID).Find(&links).Error
	return links, err
}

func (r *gormProjectTradeRepository) Update(projectTrade *domain.ProjectTrade) error {
	return r.db.Model(&domain.ProjectTrade{}).
		Where("id = ? AND project_id = ?", projectTrade.ID, projectTrade.ProjectID).
		Updates(map[string]interface{}{
			"trade_id":    projectTrade.TradeID,
			"custom_name": projectTrade.CustomName,
			"is_active":   projectTrade.IsActive,
		}).Error
}

func (r *gormProjectTradeRepository) Remove(id, projectID string) (bool, error) {
	result := r.db.Delete(&domain.ProjectTrade{}, "id = ? AND project_id = ?", id, projectID)
	return result.RowsAffected > 0, result.Error
}
