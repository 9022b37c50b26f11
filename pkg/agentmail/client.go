// Package agentmail is a minimal client for the AgentMail REST API covering
// the thread, attachment and send operations the mail pipeline needs.
package agentmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type Client struct {
	APIKey  string
	BaseURL string

	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.agentmail.to/v0"
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// GetThread fetches the full conversation a message belongs to.
func (c *Client) GetThread(ctx context.Context, inboxID, threadID string) (*Thread, error) {
	endpoint := fmt.Sprintf("%s/inboxes/%s/threads/%s", c.BaseURL, url.PathEscape(inboxID), url.PathEscape(threadID))

	respBody, err := c.doRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread %s: %w", threadID, err)
	}

	var thread Thread
	if err := json.Unmarshal(respBody, &thread); err != nil {
		return nil, fmt.Errorf("failed to parse thread response: %w", err)
	}
	return &thread, nil
}

// GetAttachment downloads the raw bytes of a message attachment.
func (c *Client) GetAttachment(ctx context.Context, inboxID, messageID, attachmentID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/inboxes/%s/messages/%s/attachments/%s",
		c.BaseURL, url.PathEscape(inboxID), url.PathEscape(messageID), url.PathEscape(attachmentID))

	respBody, err := c.doRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment %s: %w", attachmentID, err)
	}
	return respBody, nil
}

// SendMessage sends a new message from the given inbox.
func (c *Client) SendMessage(ctx context.Context, inboxID string, msg *SendMessageRequest) (*SentMessage, error) {
	endpoint := fmt.Sprintf("%s/inboxes/%s/messages/send", c.BaseURL, url.PathEscape(inboxID))

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	respBody, err := c.doRequest(ctx, "POST", endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var sent SentMessage
	if err := json.Unmarshal(respBody, &sent); err != nil {
		return nil, fmt.Errorf("failed to parse send response: %w", err)
	}
	return &sent, nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("AgentMail API error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
