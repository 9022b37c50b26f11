package repository

import (
	"errors"
	"strings"
	"time"

	"bidbuddy-backend/internal/proposal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicate marks an insert rejected by the proposal uniqueness
// constraint. Callers treat it as benign.
var ErrDuplicate = errors.New("proposal already exists")

// ProposalRepository defines the interface for proposal data access
type ProposalRepository interface {
	// Insert creates a proposal row; duplicates surface as ErrDuplicate
	Insert(proposal *domain.Proposal) error

	// ListByProject returns a project's proposals, optionally filtered by trade
	ListByProject(projectID, tradeID string) ([]*domain.Proposal, error)

	// ExistingFileIDs returns the drive file IDs already tracked for a project
	ExistingFileIDs(projectID string) (map[string]bool, error)

	// CountByProject returns total proposals and distinct bidding companies
	CountByProject(projectID string) (total int64, uniqueCompanies int64, err error)
}

// DocumentExtractionRepository stores per-attachment extraction audit rows
type DocumentExtractionRepository interface {
	Insert(extraction *domain.DocumentExtraction) error
}

// StatsRepository reads the bidder statistics view and triggers its refresh
type StatsRepository interface {
	// ListByProject returns the stats rows for a project
	ListByProject(projectID string) ([]*domain.BidderStats, error)

	// Refresh recomputes the aggregates after new proposals land
	Refresh() error
}

// gormProposalRepository implements ProposalRepository using GORM
type gormProposalRepository struct {
	db *gorm.DB
}

// NewGormProposalRepository creates a new GORM-based ProposalRepository
func NewGormProposalRepository(db *gorm.DB) ProposalRepository {
	db.AutoMigrate(&domain.Proposal{})
	return &gormProposalRepository{db: db}
}

func (r *gormProposalRepository) Insert(proposal *domain.Proposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	if proposal.ReceivedAt.IsZero() {
		proposal.ReceivedAt = time.Now()
	}
	proposal.CreatedAt = time.Now()

	err := r.db.Create(proposal).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate") {
		return ErrDuplicate
	}
	return err
}

func (r *gormProposalRepository) ListByProject(projectID, tradeID string) ([]*domain.Proposal, error) {
	query := r.db.Where("project_id = ?", projectID)
	if tradeID != "" {
		query = query.Where("trade_id = ?", tradeID)
	}

	var proposals []*domain.Proposal
	err := query.Order("received_at DESC").Find(&proposals).Error
	return proposals, err
}

func (r *gormProposalRepository) ExistingFileIDs(projectID string) (map[string]bool, error) {
	var fileIDs []string
	err := r.db.Model(&domain.Proposal{}).
		Where("project_id = ? AND drive_file_id <> ''", projectID).
		Pluck("drive_file_id", &fileIDs).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(fileIDs))
	for _, id := range fileIDs {
		existing[id] = true
	}
	return existing, nil
}

func (r *gormProposalRepository) CountByProject(projectID string) (int64, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Proposal{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var uniqueCompanies int64
	err := r.db.Model(&domain.Proposal{}).
		Where("project_id = ?", projectID).
		Distinct("company_name").
		Count(&uniqueCompanies).Error
	return total, uniqueCompanies, err
}

// gormDocumentExtractionRepository implements DocumentExtractionRepository using GORM
type gormDocumentExtractionRepository struct {
	db *gorm.DB
}

// NewGormDocumentExtractionRepository creates a new GORM-based DocumentExtractionRepository
func NewGormDocumentExtractionRepository(db *gorm.DB) DocumentExtractionRepository {
	db.AutoMigrate(&domain.DocumentExtraction{})
	return &gormDocumentExtractionRepository{db: db}
}

func (r *gormDocumentExtractionRepository) Insert(extraction *domain.DocumentExtraction) error {
	if extraction.ID == "" {
		extraction.ID = uuid.New().String()
	}
	extraction.CreatedAt = time.Now()
	return r.db.Create(extraction).Error
}

// gormStatsRepository implements StatsRepository over the bidder_stats
// materialized view and its refresh function.
type gormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GORM-based StatsRepository
func NewGormStatsRepository(db *gorm.DB) StatsRepository {
	return &gormStatsRepository{db: db}
}

func (r *gormStatsRepository) ListByProject(projectID string) ([]*domain.BidderStats, error) {
	var stats []*domain.BidderStats
	err := r.db.Where("project_id = ?", projectID).Order("display_name").Find(&stats).Error
	return stats, err
}

func (r *gormStatsRepository) Refresh() error {
	return r.db.Exec("SELECT refresh_bidder_stats()").Error
}
