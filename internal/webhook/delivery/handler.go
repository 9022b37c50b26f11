package delivery

import (
	"context"
	"log"
	"net/http"

	"bidbuddy-backend/internal/workflow"
	"bidbuddy-backend/pkg/agentmail"

	"github.com/gin-gonic/gin"
)

// Runner processes one inbound message through the pipeline.
type Runner interface {
	Run(ctx context.Context, msg *agentmail.Message) *workflow.Result
}

// WebhookHandler receives AgentMail event notifications
type WebhookHandler struct {
	runner Runner
}

func NewWebhookHandler(runner Runner) *WebhookHandler {
	return &WebhookHandler{runner: runner}
}

// webhookPayload is the AgentMail event envelope
type webhookPayload struct {
	EventType string             `json:"event_type"`
	Message   *agentmail.Message `json:"message"`
}

// HandleAgentMail processes an AgentMail webhook delivery
// POST /webhooks/agentmail
func (h *WebhookHandler) HandleAgentMail(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload: " + err.Error()})
		return
	}

	if payload.EventType != "message.received" {
		log.Printf("ignoring webhook event %q", payload.EventType)
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "event type not handled"})
		return
	}

	if payload.Message == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message.received event without a message"})
		return
	}

	log.Printf("processing message %s from %s: %q", payload.Message.MessageID, payload.Message.From, payload.Message.Subject)
	result := h.runner.Run(c.Request.Context(), payload.Message)

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"action":   result.Action,
		"analysis": newAnalysisResponse(result),
	})
}

// forwardResult reports the outcome of the forward branch.
type forwardResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// analysisResponse is the webhook's stable analysis payload. The routing
// flags are always present; branch payloads appear only when their branch
// ran.
type analysisResponse struct {
	IsBuildingConnected   bool                            `json:"is_buildingconnected"`
	BidProposalIncluded   bool                            `json:"bid_proposal_included"`
	ShouldForward         bool                            `json:"should_forward"`
	ForwardResult         *forwardResult                  `json:"forward_result,omitempty"`
	AttachmentAnalysis    []workflow.ProposalAnalysis     `json:"attachment_analysis,omitempty"`
	BuildingConnectedData *workflow.BuildingConnectedData `json:"buildingconnected_data,omitempty"`
}

func newAnalysisResponse(result *workflow.Result) *analysisResponse {
	resp := &analysisResponse{
		IsBuildingConnected:   result.Action == workflow.ActionBuildingConnected,
		AttachmentAnalysis:    result.Attachments,
		BuildingConnectedData: result.BuildingConnected,
	}
	if result.Classification != nil {
		resp.BidProposalIncluded = result.Classification.BidProposalIncluded
		resp.ShouldForward = result.Classification.ShouldForward
	}
	if result.Action == workflow.ActionForwarded {
		resp.ForwardResult = &forwardResult{Success: result.Forwarded, Error: result.Detail}
	}
	return resp
}
