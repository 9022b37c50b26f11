package workflow

// Action identifies which branch of the pipeline handled a message.
type Action string

const (
	// ActionBuildingConnected means the message matched the BuildingConnected
	// notification format and was handled by the dedicated extractor.
	ActionBuildingConnected Action = "buildingconnected_extracted"
	// ActionBidProposal means the classifier found a bid proposal and the
	// attachments went through extraction and filing.
	ActionBidProposal Action = "bid_proposal"
	// ActionForwarded means the message was relayed to the admin inbox.
	ActionForwarded Action = "forwarded"
	// ActionSkipped means no branch claimed the message.
	ActionSkipped Action = "skipped"
)

// Classification is the LLM's verdict on an email thread. A failed
// classification yields the zero value with Err set, which routes the
// message to the skip branch rather than failing the webhook.
type Classification struct {
	BidProposalIncluded bool   `json:"bid_proposal_included"`
	ShouldForward       bool   `json:"should_forward"`
	Err                 string `json:"error,omitempty"`
}

// BuildingConnectedData is what the notification extractor pulled out of
// a BuildingConnected "Proposal Submitted" email.
type BuildingConnectedData struct {
	ProjectName   string   `json:"project_name"`
	CompanyName   string   `json:"company_name"`
	Trade         string   `json:"trade"`
	DownloadLinks []string `json:"download_links,omitempty"`
}

// ProposalAnalysis records the outcome for a single attachment.
type ProposalAnalysis struct {
	Filename      string `json:"filename"`
	IsBidProposal bool   `json:"is_bid_proposal"`
	CompanyName   string `json:"company_name,omitempty"`
	Trade         string `json:"trade,omitempty"`
	ProjectName   string `json:"project_name,omitempty"`
	DriveFileID   string `json:"drive_file_id,omitempty"`
	DriveFileName string `json:"drive_file_name,omitempty"`
	FolderName    string `json:"folder_name,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Result is the full outcome of running one inbound message through the
// pipeline. It is returned verbatim in the webhook response body.
type Result struct {
	Action            Action                 `json:"action"`
	Classification    *Classification        `json:"classification,omitempty"`
	BuildingConnected *BuildingConnectedData `json:"buildingconnected,omitempty"`
	Attachments       []ProposalAnalysis     `json:"attachments,omitempty"`
	Forwarded         bool                   `json:"forwarded,omitempty"`
	Detail            string                 `json:"detail,omitempty"`
}
