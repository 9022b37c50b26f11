package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	projectdomain "bidbuddy-backend/internal/project/domain"
	projectrepo "bidbuddy-backend/internal/project/repository"
	"bidbuddy-backend/internal/proposal/domain"
	"bidbuddy-backend/internal/proposal/repository"
	"bidbuddy-backend/pkg/drive"
	"bidbuddy-backend/pkg/trades"

	"golang.org/x/oauth2"
)

var (
	// ErrProjectNotFound is returned for syncs against unknown projects.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoDriveFolder is returned when the project has no linked folder.
	ErrNoDriveFolder = errors.New("project has no Google Drive folder")
)

// FolderSyncResult summarizes a backfill of proposals from a project folder.
type FolderSyncResult struct {
	Success                bool     `json:"success"`
	ProjectName            string   `json:"project_name"`
	FilesProcessed         int      `json:"files_processed"`
	NewProposals           int      `json:"new_proposals"`
	SkippedExisting        int      `json:"skipped_existing"`
	TradesAddedFromSkipped int      `json:"trades_added_from_skipped"`
	Errors                 []string `json:"errors"`
}

// SyncStatus aggregates a project's bid coverage.
type SyncStatus struct {
	ProjectName    string `json:"project_name"`
	TotalProposals int64  `json:"total_proposals"`
	UniqueBidders  int64  `json:"unique_bidders"`
	TradesWithBids int    `json:"trades_with_bids"`
	TotalTrades    int    `json:"total_trades"`
}

// FolderSync backfills proposal rows from the files already sitting in a
// project's Drive folder, parsing each stored filename for trades and
// company.
type FolderSync struct {
	profiles      projectrepo.ProfileRepository
	projects      projectrepo.ProjectRepository
	projectTrades projectrepo.ProjectTradeRepository
	trades        repository.TradeRepository
	proposals     repository.ProposalRepository
	stats         repository.StatsRepository
	buildAPI      func(ctx context.Context, profile *projectdomain.Profile) (drive.API, error)
}

func NewFolderSync(
	profiles projectrepo.ProfileRepository,
	projects projectrepo.ProjectRepository,
	projectTrades projectrepo.ProjectTradeRepository,
	tradeRepo repository.TradeRepository,
	proposalRepo repository.ProposalRepository,
	statsRepo repository.StatsRepository,
	driveService *drive.Service,
) *FolderSync {
	fs := &FolderSync{
		profiles:      profiles,
		projects:      projects,
		projectTrades: projectTrades,
		trades:        tradeRepo,
		proposals:     proposalRepo,
		stats:         statsRepo,
	}
	fs.buildAPI = func(ctx context.Context, profile *projectdomain.Profile) (drive.API, error) {
		return driveService.GetDriveAPI(ctx, profile.GoogleAccessToken, profile.GoogleRefreshToken, func(t *oauth2.Token) error {
			if t.RefreshToken != "" {
				return profiles.UpdateTokens(profile.ID, t.AccessToken, t.RefreshToken)
			}
			return profiles.UpdateAccessToken(profile.ID, t.AccessToken)
		})
	}
	return fs
}

// SyncProjectFolder scans the project's folder and creates proposal rows for
// files not already tracked. Files whose drive ID is known are still parsed
// so their trades get linked to the project.
func (fs *FolderSync) SyncProjectFolder(ctx context.Context, userID, projectID string) (*FolderSyncResult, error) {
	project, err := fs.projects.FindByID(projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.DriveFolderID == "" {
		return nil, ErrNoDriveFolder
	}

	profile, err := fs.profiles.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("please reconnect Google Drive")
	}

	api, err := fs.buildAPI(ctx, profile)
	if err != nil {
		return nil, err
	}

	files, err := api.ListPDFs(ctx, project.DriveFolderID)
	if err != nil {
		return nil, err
	}

	existingFileIDs, err := fs.proposals.ExistingFileIDs(projectID)
	if err != nil {
		return nil, err
	}

	tradesByName, err := fs.tradesByName(userID)
	if err != nil {
		return nil, err
	}

	result := &FolderSyncResult{Success: true, ProjectName: project.Name, FilesProcessed: len(files), Errors: []string{}}

	for _, file := range files {
		if existingFileIDs[file.ID] {
			result.SkippedExisting++
			// Still parse the skipped file so its trades join the project.
			parsed := trades.ParseFilename(file.Name)
			if parsed.Err == "" {
				for _, tradeName := range parsed.Trades {
					if trade := tradesByName[strings.ToLower(tradeName)]; trade != nil {
						if err := fs.projectTrades.Add(&projectdomain.ProjectTrade{ProjectID: projectID, TradeID: trade.ID, IsActive: true}); err == nil {
							result.TradesAddedFromSkipped++
						}
					}
				}
			}
			continue
		}

		parsed := trades.ParseFilename(file.Name)
		if parsed.Err != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", file.Name, parsed.Err))
			continue
		}

		// One proposal row per trade, so "framing, painting, drywall" yields
		// three records for the same file.
		created := 0
		for _, tradeName := range parsed.Trades {
			trade := tradesByName[strings.ToLower(tradeName)]
			if trade == nil {
				trade = &domain.Trade{UserID: userID, Name: tradeName, IsActive: true}
				if err := fs.trades.Create(trade); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("create trade %q: %v", tradeName, err))
					continue
				}
				tradesByName[strings.ToLower(tradeName)] = trade
				if err := fs.projectTrades.Add(&projectdomain.ProjectTrade{ProjectID: projectID, TradeID: trade.ID, IsActive: true}); err != nil {
					log.Printf("[WARN] failed to link new trade %q to project %s: %v", tradeName, projectID, err)
				}
			}

			tradeID := trade.ID
			err := fs.proposals.Insert(&domain.Proposal{
				ProjectID:     projectID,
				TradeID:       &tradeID,
				CompanyName:   parsed.CompanyName,
				DriveFileID:   file.ID,
				DriveFileName: file.Name,
				Metadata: map[string]interface{}{
					"parsed_trades": parsed.Trades,
					"raw_trades":    parsed.RawTrades,
					"matched_trade": tradeName,
					"created_time":  file.CreatedTime,
					"modified_time": file.ModifiedTime,
				},
			})
			if err != nil && !errors.Is(err, repository.ErrDuplicate) {
				result.Errors = append(result.Errors, fmt.Sprintf("insert %s for %s: %v", file.Name, tradeName, err))
				continue
			}
			if err == nil {
				created++
			}
		}

		if created > 0 {
			result.NewProposals++
		}
	}

	if result.NewProposals > 0 || result.TradesAddedFromSkipped > 0 {
		if err := fs.stats.Refresh(); err != nil {
			log.Printf("[WARN] failed to refresh bidder stats: %v", err)
		}
	}

	return result, nil
}

// Status reports how many proposals, bidders and trades a project has.
func (fs *FolderSync) Status(userID, projectID string) (*SyncStatus, error) {
	project, err := fs.projects.FindByID(projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	total, uniqueCompanies, err := fs.proposals.CountByProject(projectID)
	if err != nil {
		return nil, err
	}

	stats, err := fs.stats.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	withBids := 0
	for _, s := range stats {
		if s.BidderCount > 0 {
			withBids++
		}
	}

	return &SyncStatus{
		ProjectName:    project.Name,
		TotalProposals: total,
		UniqueBidders:  uniqueCompanies,
		TradesWithBids: withBids,
		TotalTrades:    len(stats),
	}, nil
}

func (fs *FolderSync) tradesByName(userID string) (map[string]*domain.Trade, error) {
	all, err := fs.trades.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.Trade, len(all))
	for _, t := range all {
		byName[strings.ToLower(t.Name)] = t
	}
	return byName, nil
}
