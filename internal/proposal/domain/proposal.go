package domain

import "time"

// Proposal is one received bid: a company bidding one trade on one project.
// A uniqueness constraint over (project_id, company_name, trade_id) keeps
// re-syncs and webhook redeliveries from creating duplicate rows.
type Proposal struct {
	ID            string                 `json:"id" gorm:"primaryKey"`
	ProjectID     string                 `json:"project_id" gorm:"uniqueIndex:idx_proposal_unique;not null"`
	TradeID       *string                `json:"trade_id,omitempty" gorm:"uniqueIndex:idx_proposal_unique"`
	CompanyName   string                 `json:"company_name" gorm:"uniqueIndex:idx_proposal_unique;not null"`
	DriveFileID   string                 `json:"drive_file_id,omitempty" gorm:"index"`
	DriveFileName string                 `json:"drive_file_name,omitempty"`
	EmailSource   string                 `json:"email_source,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`
	ReceivedAt    time.Time              `json:"received_at"`
	CreatedAt     time.Time              `json:"created_at"`
}

// DocumentExtraction is the audit row written for every attachment run
// through the extractor, successful or not.
type DocumentExtraction struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	AttachmentURL  string    `json:"attachment_url" gorm:"index"`
	ActiveProjects []string  `json:"active_projects,omitempty" gorm:"serializer:json"`
	CompanyName    string    `json:"company_name,omitempty"`
	Trade          string    `json:"trade,omitempty"`
	IsBidProposal  *bool     `json:"is_bid_proposal,omitempty"`
	ProjectName    string    `json:"project_name,omitempty"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// BidderStats is a row of the refresh_bidder_stats materialized view, read
// only from this side.
type BidderStats struct {
	ProjectID       string     `json:"project_id"`
	TradeID         string     `json:"trade_id"`
	TradeName       string     `json:"trade_name"`
	DisplayName     string     `json:"display_name"`
	BidderCount     int        `json:"bidder_count"`
	ProposalCount   int        `json:"proposal_count"`
	LastBidReceived *time.Time `json:"last_bid_received,omitempty"`
}

func (BidderStats) TableName() string {
	return "bidder_stats"
}
