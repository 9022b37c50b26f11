package delivery

import (
	"errors"
	"log"
	"net/http"

	"bidbuddy-backend/internal/proposal/domain"
	"bidbuddy-backend/internal/proposal/repository"
	"bidbuddy-backend/internal/proposal/usecase"

	"github.com/gin-gonic/gin"
)

// ProposalHandler handles trade and proposal HTTP requests
type ProposalHandler struct {
	trades     repository.TradeRepository
	proposals  repository.ProposalRepository
	stats      repository.StatsRepository
	folderSync *usecase.FolderSync
}

func NewProposalHandler(
	trades repository.TradeRepository,
	proposals repository.ProposalRepository,
	stats repository.StatsRepository,
	folderSync *usecase.FolderSync,
) *ProposalHandler {
	return &ProposalHandler{
		trades:     trades,
		proposals:  proposals,
		stats:      stats,
		folderSync: folderSync,
	}
}

// GetTrades returns all trades for the authenticated user
// GET /api/trades
func (h *ProposalHandler) GetTrades(c *gin.Context) {
	userID := c.GetString("userID")

	trades, err := h.trades.FindByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trades": trades, "total": len(trades)})
}

// TradeRequest represents the request body for creating or updating a trade
type TradeRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// CreateTrade creates a new trade
// POST /api/trades
func (h *ProposalHandler) CreateTrade(c *gin.Context) {
	userID := c.GetString("userID")

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.trades.FindByNameCI(userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Trade already exists", "trade": existing})
		return
	}

	trade := &domain.Trade{UserID: userID, Name: req.Name, IsActive: true}
	if req.IsActive != nil {
		trade.IsActive = *req.IsActive
	}
	if err := h.trades.Create(trade); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, trade)
}

// UpdateTrade renames a trade or toggles its active flag
// PUT /api/trades/:id
func (h *ProposalHandler) UpdateTrade(c *gin.Context) {
	userID := c.GetString("userID")
	tradeID := c.Param("id")

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trade := &domain.Trade{ID: tradeID, UserID: userID, Name: req.Name, IsActive: true}
	if req.IsActive != nil {
		trade.IsActive = *req.IsActive
	}

	found, err := h.trades.Update(trade)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		return
	}

	c.JSON(http.StatusOK, trade)
}

// DeleteTrade soft-deletes a trade so history keeps its rows
// DELETE /api/trades/:id
func (h *ProposalHandler) DeleteTrade(c *gin.Context) {
	userID := c.GetString("userID")
	tradeID := c.Param("id")

	found, err := h.trades.Deactivate(tradeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": tradeID, "is_active": false})
}

// GetProposals returns a project's proposals, optionally filtered by trade
// GET /api/projects/:id/proposals?trade_id=...
func (h *ProposalHandler) GetProposals(c *gin.Context) {
	projectID := c.Param("id")
	tradeID := c.Query("trade_id")

	proposals, err := h.proposals.ListByProject(projectID, tradeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": proposals, "total": len(proposals)})
}

// CreateProposalRequest represents the request body for a manual proposal entry
type CreateProposalRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	TradeID     string `json:"trade_id"`
	Notes       string `json:"notes"`
}

// CreateProposal records a proposal received outside the email pipeline
// POST /api/projects/:id/proposals
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	projectID := c.Param("id")

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal := &domain.Proposal{
		ProjectID:   projectID,
		CompanyName: req.CompanyName,
		EmailSource: "manual",
	}
	if req.TradeID != "" {
		proposal.TradeID = &req.TradeID
	}
	if req.Notes != "" {
		proposal.Metadata = map[string]interface{}{"notes": req.Notes}
	}

	if err := h.proposals.Insert(proposal); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Proposal already recorded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.stats.Refresh(); err != nil {
		// The row is in, stats catch up on the next refresh.
		log.Printf("[WARN] failed to refresh bidder stats: %v", err)
	}

	c.JSON(http.StatusCreated, proposal)
}

// GetProjectStats returns per-trade bidder statistics for a project
// GET /api/projects/:id/stats
func (h *ProposalHandler) GetProjectStats(c *gin.Context) {
	projectID := c.Param("id")

	rows, err := h.stats.ListByProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_id": projectID, "stats": rows})
}

// SyncProjectFolder backfills proposals from files already in the project's
// Drive folder
// POST /api/projects/:id/sync-drive
func (h *ProposalHandler) SyncProjectFolder(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	result, err := h.folderSync.SyncProjectFolder(c.Request.Context(), userID, projectID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		case errors.Is(err, usecase.ErrNoDriveFolder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project has no Drive folder"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSyncStatus reports whether a project's proposals line up with its stats
// GET /api/projects/:id/sync-status
func (h *ProposalHandler) GetSyncStatus(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	status, err := h.folderSync.Status(userID, projectID)
	if err != nil {
		if errors.Is(err, usecase.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}
