package repository

import (
	"time"

	"bidbuddy-backend/internal/project/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *domain.Project) error

	// FindByID finds a project owned by the user
	FindByID(id, userID string) (*domain.Project, error)

	// FindByUser returns all projects for a user ordered by creation time
	FindByUser(userID string) ([]*domain.Project, error)

	// FindByExactName finds a project by its exact name
	FindByExactName(userID, name string) (*domain.Project, error)

	// EnabledNames returns the names of the user's enabled projects
	EnabledNames(userID string) ([]string, error)

	// SetEnabled toggles a project on or off; reports whether it existed
	SetEnabled(id, userID string, enabled bool) (bool, error)

	// FindDriveProjects returns the user's drive-synced projects
	FindDriveProjects(userID string) ([]*domain.Project, error)

	// RenameDriveProject updates the name and modified time after a sync
	RenameDriveProject(id, name string, modifiedTime *time.Time) error

	// Delete removes a project
	Delete(id string) error
}

// ProjectTradeRepository manages the project-to-trade link table
type ProjectTradeRepository interface {
	// Add links a trade to a project; duplicate links are benign
	Add(projectTrade *domain.ProjectTrade) error

	// ListByProject returns all trade links for a project
	ListByProject(projectID string) ([]*domain.ProjectTrade, error)

	// Update updates a link's custom name or active flag
	Update(projectTrade *domain.ProjectTrade) error

	// Remove deletes a link from a project
	Remove(id, projectID string) (bool, error)
}
