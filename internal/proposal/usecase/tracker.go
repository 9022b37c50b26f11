package usecase

import (
	"errors"
	"fmt"
	"log"

	projectdomain "bidbuddy-backend/internal/project/domain"
	projectrepo "bidbuddy-backend/internal/project/repository"
	"bidbuddy-backend/internal/proposal/domain"
	"bidbuddy-backend/internal/proposal/repository"
	"bidbuddy-backend/pkg/trades"
)

// Tracker records extracted bid proposals: one proposal row per
// (attachment, matched trade), with trade rows created on demand.
type Tracker struct {
	trades        repository.TradeRepository
	projects      projectrepo.ProjectRepository
	projectTrades projectrepo.ProjectTradeRepository
	proposals     repository.ProposalRepository
	extractions   repository.DocumentExtractionRepository
	stats         repository.StatsRepository
}

func NewTracker(
	tradeRepo repository.TradeRepository,
	projectRepo projectrepo.ProjectRepository,
	projectTradeRepo projectrepo.ProjectTradeRepository,
	proposalRepo repository.ProposalRepository,
	extractionRepo repository.DocumentExtractionRepository,
	statsRepo repository.StatsRepository,
) *Tracker {
	return &Tracker{
		trades:        tradeRepo,
		projects:      projectRepo,
		projectTrades: projectTradeRepo,
		proposals:     proposalRepo,
		extractions:   extractionRepo,
		stats:         statsRepo,
	}
}

// TrackInput describes one successfully extracted and filed attachment.
type TrackInput struct {
	UserID      string
	ProjectName string
	CompanyName string
	// RawTrade is the extractor's combined trade string, e.g.
	// "Electrical, Plumbing, & HVAC".
	RawTrade      string
	DriveFileID   string
	DriveFileName string
	EmailSource   string
	Metadata      map[string]interface{}
}

// TrackResult reports what was persisted. Errors are collected, never raised.
type TrackResult struct {
	ProposalsCreated int      `json:"proposals_created"`
	Duplicates       int      `json:"duplicates"`
	Warnings         []string `json:"warnings,omitempty"`
	Errors           []string `json:"errors,omitempty"`
}

// RecordExtraction writes the per-attachment audit row. Failures are logged,
// not propagated, so a broken audit table cannot stall the pipeline.
func (t *Tracker) RecordExtraction(extraction *domain.DocumentExtraction) {
	if err := t.extractions.Insert(extraction); err != nil {
		log.Printf("[ERROR] failed to record document extraction for %s: %v", extraction.AttachmentURL, err)
	}
}

// Track persists proposal rows for each trade parsed out of the extraction.
// Projects are never created implicitly: an unknown project name skips the
// whole attachment with a warning.
func (t *Tracker) Track(in TrackInput) *TrackResult {
	result := &TrackResult{}

	parsedTrades := trades.ParseTradeList(in.RawTrade)
	if len(parsedTrades) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("no trades parsed from %q", in.RawTrade))
		return result
	}

	project, err := t.projects.FindByExactName(in.UserID, in.ProjectName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("project lookup failed: %v", err))
		return result
	}
	if project == nil {
		log.Printf("[WARN] no project named %q for user %s, skipping proposal tracking", in.ProjectName, in.UserID)
		result.Warnings = append(result.Warnings, fmt.Sprintf("project %q not found", in.ProjectName))
		return result
	}

	for _, tradeName := range parsedTrades {
		trade, err := t.resolveTrade(in.UserID, tradeName)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("trade %q: %v", tradeName, err))
			continue
		}

		if err := t.projectTrades.Add(&projectdomain.ProjectTrade{ProjectID: project.ID, TradeID: trade.ID, IsActive: true}); err != nil {
			log.Printf("[WARN] failed to link trade %q to project %q: %v", trade.Name, project.Name, err)
		}

		tradeID := trade.ID
		err = t.proposals.Insert(&domain.Proposal{
			ProjectID:     project.ID,
			TradeID:       &tradeID,
			CompanyName:   in.CompanyName,
			DriveFileID:   in.DriveFileID,
			DriveFileName: in.DriveFileName,
			EmailSource:   in.EmailSource,
			Metadata:      in.Metadata,
		})
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			result.Duplicates++
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("insert proposal for %q: %v", tradeName, err))
		default:
			result.ProposalsCreated++
		}
	}

	if result.ProposalsCreated > 0 {
		if err := t.stats.Refresh(); err != nil {
			log.Printf("[WARN] failed to refresh bidder stats: %v", err)
		}
	}

	return result
}

// resolveTrade reuses an existing trade by case-insensitive name or creates
// a new one.
func (t *Tracker) resolveTrade(userID, name string) (*domain.Trade, error) {
	existing, err := t.trades.FindByNameCI(userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	trade := &domain.Trade{UserID: userID, Name: name, IsActive: true}
	if err := t.trades.Create(trade); err != nil {
		return nil, err
	}
	return trade, nil
}
