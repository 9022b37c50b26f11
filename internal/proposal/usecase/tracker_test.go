package usecase

import (
	"fmt"
	"strings"
	"testing"

	projectdomain "bidbuddy-backend/internal/project/domain"
	projectrepo "bidbuddy-backend/internal/project/repository"
	"bidbuddy-backend/internal/proposal/domain"
	"bidbuddy-backend/internal/proposal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTrades keeps trades in memory keyed by lower-cased name.
type stubTrades struct {
	repository.TradeRepository
	byName  map[string]*domain.Trade
	created []*domain.Trade
}

func newStubTrades(existing ...*domain.Trade) *stubTrades {
	s := &stubTrades{byName: map[string]*domain.Trade{}}
	for _, t := range existing {
		s.byName[strings.ToLower(t.Name)] = t
	}
	return s
}

func (s *stubTrades) FindByNameCI(_, name string) (*domain.Trade, error) {
	return s.byName[strings.ToLower(name)], nil
}

func (s *stubTrades) Create(trade *domain.Trade) error {
	trade.ID = fmt.Sprintf("trade-%d", len(s.created)+1)
	s.created = append(s.created, trade)
	s.byName[strings.ToLower(trade.Name)] = trade
	return nil
}

type stubProjects struct {
	projectrepo.ProjectRepository
	byName map[string]*projectdomain.Project
}

func (s *stubProjects) FindByExactName(_, name string) (*projectdomain.Project, error) {
	return s.byName[name], nil
}

type stubProjectTrades struct {
	projectrepo.ProjectTradeRepository
	links []*projectdomain.ProjectTrade
}

func (s *stubProjectTrades) Add(link *projectdomain.ProjectTrade) error {
	s.links = append(s.links, link)
	return nil
}

type stubProposals struct {
	repository.ProposalRepository
	inserted   []*domain.Proposal
	duplicates int
}

func (s *stubProposals) Insert(p *domain.Proposal) error {
	for _, existing := range s.inserted {
		if existing.ProjectID == p.ProjectID && existing.CompanyName == p.CompanyName &&
			existing.TradeID != nil && p.TradeID != nil && *existing.TradeID == *p.TradeID {
			s.duplicates++
			return repository.ErrDuplicate
		}
	}
	s.inserted = append(s.inserted, p)
	return nil
}

type stubExtractions struct {
	rows []*domain.DocumentExtraction
}

func (s *stubExtractions) Insert(e *domain.DocumentExtraction) error {
	s.rows = append(s.rows, e)
	return nil
}

type stubStats struct {
	repository.StatsRepository
	refreshes int
}

func (s *stubStats) Refresh() error {
	s.refreshes++
	return nil
}

func newTestTracker(tradeRepo *stubTrades, projects *stubProjects, proposals *stubProposals, stats *stubStats) *Tracker {
	return NewTracker(tradeRepo, projects, &stubProjectTrades{}, proposals, &stubExtractions{}, stats)
}

func TestTrackCreatesOneProposalPerTrade(t *testing.T) {
	tradeRepo := newStubTrades()
	projects := &stubProjects{byName: map[string]*projectdomain.Project{
		"Panda Express": {ID: "proj-1", Name: "Panda Express"},
	}}
	proposals := &stubProposals{}
	stats := &stubStats{}

	result := newTestTracker(tradeRepo, projects, proposals, stats).Track(TrackInput{
		UserID:      "user-1",
		ProjectName: "Panda Express",
		CompanyName: "Acme Plumbing",
		RawTrade:    "Electrical, Plumbing, & HVAC",
		EmailSource: "email",
	})

	assert.Equal(t, 3, result.ProposalsCreated)
	assert.Empty(t, result.Errors)
	require.Len(t, proposals.inserted, 3)
	assert.Len(t, tradeRepo.created, 3)
	assert.Equal(t, 1, stats.refreshes)
}

func TestTrackReusesExistingTradeCaseInsensitive(t *testing.T) {
	existing := &domain.Trade{ID: "trade-existing", UserID: "user-1", Name: "Plumbing", IsActive: true}
	tradeRepo := newStubTrades(existing)
	projects := &stubProjects{byName: map[string]*projectdomain.Project{
		"Panda Express": {ID: "proj-1", Name: "Panda Express"},
	}}
	proposals := &stubProposals{}

	result := newTestTracker(tradeRepo, projects, proposals, &stubStats{}).Track(TrackInput{
		UserID:      "user-1",
		ProjectName: "Panda Express",
		CompanyName: "Acme Plumbing",
		RawTrade:    "plumbing",
	})

	assert.Equal(t, 1, result.ProposalsCreated)
	assert.Empty(t, tradeRepo.created)
	require.Len(t, proposals.inserted, 1)
	assert.Equal(t, "trade-existing", *proposals.inserted[0].TradeID)
}

func TestTrackSkipsUnknownProject(t *testing.T) {
	proposals := &stubProposals{}
	stats := &stubStats{}

	result := newTestTracker(newStubTrades(), &stubProjects{byName: map[string]*projectdomain.Project{}}, proposals, stats).Track(TrackInput{
		UserID:      "user-1",
		ProjectName: "Ghost Project",
		CompanyName: "Acme",
		RawTrade:    "Concrete",
	})

	assert.Zero(t, result.ProposalsCreated)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Ghost Project")
	assert.Empty(t, proposals.inserted)
	assert.Zero(t, stats.refreshes)
}

func TestTrackSwallowsDuplicates(t *testing.T) {
	tradeRepo := newStubTrades()
	projects := &stubProjects{byName: map[string]*projectdomain.Project{
		"Panda Express": {ID: "proj-1", Name: "Panda Express"},
	}}
	proposals := &stubProposals{}
	stats := &stubStats{}
	tracker := newTestTracker(tradeRepo, projects, proposals, stats)

	in := TrackInput{
		UserID:      "user-1",
		ProjectName: "Panda Express",
		CompanyName: "Acme",
		RawTrade:    "Concrete",
	}

	first := tracker.Track(in)
	second := tracker.Track(in)

	assert.Equal(t, 1, first.ProposalsCreated)
	assert.Zero(t, second.ProposalsCreated)
	assert.Equal(t, 1, second.Duplicates)
	assert.Empty(t, second.Errors)
	assert.Len(t, proposals.inserted, 1)
	// Stats only refresh when something new landed.
	assert.Equal(t, 1, stats.refreshes)
}
