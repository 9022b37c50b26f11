package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bidbuddy-backend/internal/workflow"
	"bidbuddy-backend/pkg/agentmail"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	messages []*agentmail.Message
	result   *workflow.Result
}

func (s *stubRunner) Run(_ context.Context, msg *agentmail.Message) *workflow.Result {
	s.messages = append(s.messages, msg)
	return s.result
}

func newWebhookRouter(runner Runner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/agentmail", NewWebhookHandler(runner).HandleAgentMail)
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/agentmail", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookProcessesMessageReceived(t *testing.T) {
	runner := &stubRunner{result: &workflow.Result{Action: workflow.ActionSkipped}}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{
		"event_type": "message.received",
		"message": {
			"message_id": "msg-1",
			"inbox_id": "inbox-1",
			"thread_id": "thread-1",
			"from": "sub@acme.com",
			"subject": "Bid attached"
		}
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, runner.messages, 1)
	assert.Equal(t, "msg-1", runner.messages[0].MessageID)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "skipped", resp["action"])
}

func TestWebhookAnalysisShape(t *testing.T) {
	runner := &stubRunner{result: &workflow.Result{
		Action:         workflow.ActionBidProposal,
		Classification: &workflow.Classification{BidProposalIncluded: true, ShouldForward: true},
		Attachments:    []workflow.ProposalAnalysis{{Filename: "bid.pdf", IsBidProposal: true}},
	}}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{"event_type": "message.received", "message": {"message_id": "msg-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Action   string                 `json:"action"`
		Analysis map[string]interface{} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bid_proposal", resp.Action)

	// The routing flags are always present in the analysis object.
	assert.Equal(t, false, resp.Analysis["is_buildingconnected"])
	assert.Equal(t, true, resp.Analysis["bid_proposal_included"])
	assert.Equal(t, true, resp.Analysis["should_forward"])

	attachments, ok := resp.Analysis["attachment_analysis"].([]interface{})
	require.True(t, ok)
	require.Len(t, attachments, 1)
	assert.NotContains(t, resp.Analysis, "forward_result")
	assert.NotContains(t, resp.Analysis, "buildingconnected_data")
}

func TestWebhookForwardedAnalysis(t *testing.T) {
	runner := &stubRunner{result: &workflow.Result{
		Action:         workflow.ActionForwarded,
		Classification: &workflow.Classification{ShouldForward: true},
		Forwarded:      true,
	}}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{"event_type": "message.received", "message": {"message_id": "msg-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis struct {
			IsBuildingConnected bool `json:"is_buildingconnected"`
			ShouldForward       bool `json:"should_forward"`
			ForwardResult       *struct {
				Success bool `json:"success"`
			} `json:"forward_result"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Analysis.IsBuildingConnected)
	assert.True(t, resp.Analysis.ShouldForward)
	require.NotNil(t, resp.Analysis.ForwardResult)
	assert.True(t, resp.Analysis.ForwardResult.Success)
}

func TestWebhookBuildingConnectedAnalysis(t *testing.T) {
	runner := &stubRunner{result: &workflow.Result{
		Action: workflow.ActionBuildingConnected,
		BuildingConnected: &workflow.BuildingConnectedData{
			ProjectName: "Yogurtland #42",
			CompanyName: "Acme Drywall",
			Trade:       "Drywall",
		},
	}}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{"event_type": "message.received", "message": {"message_id": "msg-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis struct {
			IsBuildingConnected   bool                            `json:"is_buildingconnected"`
			BuildingConnectedData *workflow.BuildingConnectedData `json:"buildingconnected_data"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Analysis.IsBuildingConnected)
	require.NotNil(t, resp.Analysis.BuildingConnectedData)
	assert.Equal(t, "Acme Drywall", resp.Analysis.BuildingConnectedData.CompanyName)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	runner := &stubRunner{result: &workflow.Result{Action: workflow.ActionSkipped}}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{"event_type": "message.sent", "message": {"message_id": "msg-1"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, runner.messages)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "event type not handled", resp["message"])
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	runner := &stubRunner{}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{"event_type": "message.received", "message":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, runner.messages)
}

func TestWebhookRejectsMissingMessage(t *testing.T) {
	runner := &stubRunner{}
	r := newWebhookRouter(runner)

	w := postWebhook(r, `{"event_type": "message.received"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, runner.messages)
}
