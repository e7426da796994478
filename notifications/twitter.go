package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TwitterClient posts tweets through the X API v2 create-tweet endpoint
type TwitterClient struct {
	endpoint    string
	bearerToken string
	client      *http.Client
}

// NewTwitterClient creates a Twitter publisher
func NewTwitterClient(endpoint, bearerToken string) *TwitterClient {
	return &TwitterClient{
		endpoint:    endpoint,
		bearerToken: bearerToken,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Publish posts one tweet and returns its ID
func (t *TwitterClient) Publish(text string) (string, error) {
	body, err := json.Marshal(tweetRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("Publish: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, t.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("Publish: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.bearerToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Publish: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Publish: HTTP %d: %s", resp.StatusCode, detail)
	}

	var payload tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("Publish: decode: %w", err)
	}
	return payload.Data.ID, nil
}
