// Package reducto is a client for the Reducto document extraction API. It
// uploads a document, submits a structured extraction job and polls until the
// job finishes.
package reducto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

// Sentinel errors for the distinct failure stages of an extraction.
var (
	ErrUpload     = errors.New("reducto: upload failed")
	ErrSubmit     = errors.New("reducto: extraction submit failed")
	ErrExtraction = errors.New("reducto: extraction failed")
	ErrTimeout    = errors.New("reducto: extraction timed out")
)

// Extraction holds the structured fields pulled from a document. Null fields
// from the API become zero values.
type Extraction struct {
	CompanyName   string `json:"company_name"`
	Trade         string `json:"trade"`
	IsBidProposal bool   `json:"is_bid_proposal"`
	ProjectName   string `json:"project_name"`
}

type Client struct {
	APIKey       string
	BaseURL      string
	PollInterval time.Duration
	Timeout      time.Duration

	httpClient *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://platform.reducto.ai"
	}
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &Client{
		APIKey:       apiKey,
		BaseURL:      baseURL,
		PollInterval: 10 * time.Second,
		Timeout:      timeout,
		httpClient:   &http.Client{},
	}
}

// ExtractFromFile uploads raw file bytes and runs the bid document extraction
// against them. activeProjects is embedded in the extraction prompt so the
// model can match the document to a known project.
func (c *Client) ExtractFromFile(ctx context.Context, fileData []byte, filename string, activeProjects []string) (*Extraction, error) {
	fileID, err := c.upload(ctx, fileData, filename)
	if err != nil {
		return nil, err
	}
	return c.extract(ctx, fileID, activeProjects)
}

func (c *Client) upload(ctx context.Context, fileData []byte, filename string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if _, err := part.Write(fileData); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode, string(respBody))
	}

	var uploaded struct {
		ID     string `json:"id"`
		FileID string `json:"file_id"`
	}
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	fileID := uploaded.ID
	if fileID == "" {
		fileID = uploaded.FileID
	}
	if fileID == "" {
		return "", fmt.Errorf("%w: no file ID returned", ErrUpload)
	}
	return fileID, nil
}

func (c *Client) extract(ctx context.Context, fileID string, activeProjects []string) (*Extraction, error) {
	payload := extractionPayload(fileID, activeProjects)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmit, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/extract", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmit, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmit, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrSubmit, resp.StatusCode, string(respBody))
	}

	var submitted struct {
		Result json.RawMessage `json:"result"`
		JobID  string          `json:"job_id"`
	}
	if err := json.Unmarshal(respBody, &submitted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmit, err)
	}

	// Some documents extract synchronously and skip the job queue.
	if len(submitted.Result) > 0 && string(submitted.Result) != "null" {
		return parseResult(submitted.Result)
	}

	if submitted.JobID == "" {
		return nil, fmt.Errorf("%w: no job_id returned", ErrSubmit)
	}
	return c.pollJob(ctx, submitted.JobID)
}

func (c *Client) pollJob(ctx context.Context, jobID string) (*Extraction, error) {
	deadline := time.Now().Add(c.Timeout)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/job/"+jobID, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: poll status %d: %s", ErrExtraction, resp.StatusCode, string(respBody))
		}

		var job struct {
			Status   string  `json:"status"`
			Progress float64 `json:"progress"`
			Reason   string  `json:"reason"`
			Result   struct {
				Result json.RawMessage `json:"result"`
			} `json:"result"`
		}
		if err := json.Unmarshal(respBody, &job); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}

		switch job.Status {
		case "Complete":
			if len(job.Result.Result) == 0 || string(job.Result.Result) == "null" {
				return nil, fmt.Errorf("%w: job completed but no result found", ErrExtraction)
			}
			return parseResult(job.Result.Result)
		case "Failed":
			reason := job.Reason
			if reason == "" {
				reason = "unknown error"
			}
			return nil, fmt.Errorf("%w: %s", ErrExtraction, reason)
		default:
			log.Printf("[DEBUG] reducto job %s status: %s, progress: %.0f%%", jobID, job.Status, job.Progress)
		}
	}

	return nil, fmt.Errorf("%w after %s", ErrTimeout, c.Timeout)
}

// parseResult decodes an extraction result whose fields may be wrapped in
// citation envelopes ({"value": ..., "citations": [...]}). Some responses
// deliver the object as a single-element array.
func parseResult(raw json.RawMessage) (*Extraction, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: empty result list", ErrExtraction)
		}
		raw = list[0]
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var ext Extraction
	ext.CompanyName = stringOf(fields["company_name"])
	ext.Trade = stringOf(fields["trade"])
	ext.ProjectName = stringOf(fields["project_name"])
	ext.IsBidProposal = boolOf(fields["is_bid_proposal"])
	return &ext, nil
}

func stringOf(raw json.RawMessage) string {
	v, _ := scalarOf(raw).(string)
	return v
}

func boolOf(raw json.RawMessage) bool {
	v, _ := scalarOf(raw).(bool)
	return v
}

func scalarOf(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	if envelope, ok := v.(map[string]interface{}); ok {
		if inner, ok := envelope["value"]; ok {
			return inner
		}
		return nil
	}
	return v
}
