package delivery

import (
	"net/http"

	"bidbuddy-backend/internal/project/repository"
	"bidbuddy-backend/internal/project/usecase"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project and Drive folder HTTP requests
type ProjectHandler struct {
	projects      repository.ProjectRepository
	projectTrades repository.ProjectTradeRepository
	profiles      repository.ProfileRepository
	driveSync     *usecase.DriveSyncUsecase
}

func NewProjectHandler(
	projects repository.ProjectRepository,
	projectTrades repository.ProjectTradeRepository,
	profiles repository.ProfileRepository,
	driveSync *usecase.DriveSyncUsecase,
) *ProjectHandler {
	return &ProjectHandler{
		projects:      projects,
		projectTrades: projectTrades,
		profiles:      profiles,
		driveSync:     driveSync,
	}
}

// GetProjects returns all projects for the authenticated user
// GET /api/projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	userID := c.GetString("userID")

	projects, err := h.projects.FindByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
}

// ToggleProjectRequest represents the request body for toggling a project
type ToggleProjectRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ToggleProject enables or disables a project for bid intake
// PATCH /api/projects/:id/toggle
func (h *ProjectHandler) ToggleProject(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	var req ToggleProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, err := h.projects.SetEnabled(projectID, userID, *req.Enabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": projectID, "enabled": *req.Enabled})
}

// GetProjectTrades returns the trades linked to a project
// GET /api/projects/:id/trades
func (h *ProjectHandler) GetProjectTrades(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	project, err := h.projects.FindByID(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	links, err := h.projectTrades.ListByProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_id": projectID, "trades": links})
}

// GetRootFolder returns the stored Drive root folder selection
// GET /api/drive/root-folder
func (h *ProjectHandler) GetRootFolder(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := h.profiles.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil || profile.DriveRootFolderID == "" {
		c.JSON(http.StatusOK, gin.H{"configured": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"configured":   true,
		"folder_id":    profile.DriveRootFolderID,
		"folder_name":  profile.DriveRootFolderName,
		"last_sync_at": profile.LastSyncAt,
	})
}

// SetRootFolderRequest represents the request body for selecting a root folder
type SetRootFolderRequest struct {
	FolderID   string `json:"folder_id" binding:"required"`
	FolderName string `json:"folder_name" binding:"required"`
}

// SetRootFolder stores the Drive folder that holds project folders
// POST /api/drive/root-folder
func (h *ProjectHandler) SetRootFolder(c *gin.Context) {
	userID := c.GetString("userID")
	email := c.GetString("userEmail")

	var req SetRootFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profiles.SetRootFolder(userID, email, req.FolderID, req.FolderName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder_id": req.FolderID, "folder_name": req.FolderName})
}

// SyncDriveFolders mirrors the root folder's subfolders into projects
// POST /api/drive/sync
func (h *ProjectHandler) SyncDriveFolders(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.driveSync.SyncFolders(c.Request.Context(), userID)
	if err != nil {
		if err == usecase.ErrNoRootFolder {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No Drive root folder configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListDriveFolders lists folders under a parent (the root folder by default)
// GET /api/drive/folders?parent_id=...
func (h *ProjectHandler) ListDriveFolders(c *gin.Context) {
	userID := c.GetString("userID")
	parentID := c.Query("parent_id")

	folders, err := h.driveSync.ListFolders(c.Request.Context(), userID, parentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders, "total": len(folders)})
}

// SearchDriveFolders searches folders by name
// GET /api/drive/folders/search?q=...
func (h *ProjectHandler) SearchDriveFolders(c *gin.Context) {
	userID := c.GetString("userID")
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	folders, err := h.driveSync.SearchFolders(c.Request.Context(), userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders, "total": len(folders)})
}
