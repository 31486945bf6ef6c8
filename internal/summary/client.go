package summary

import (
	"context"
	"fmt"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

// responsesRequest is the OpenAI Responses API request payload.
type responsesRequest struct {
	Model       string    `json:"model"`
	Input       []message `json:"input"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responsesPayload mirrors the subset of the Responses API reply we consume:
// a list of output items, each possibly containing text segments.
type responsesPayload struct {
	Output []outputItem `json:"output"`
}

type outputItem struct {
	Type    string           `json:"type"`
	Content []contentSegment `json:"content"`
}

type contentSegment struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// apiResult is one attempt's outcome: the HTTP status, the raw Retry-After
// hint, and the decoded payload when the call succeeded.
type apiResult struct {
	status     int
	retryAfter string
	payload    responsesPayload
}

// Client posts prompts to the text-generation endpoint.
type Client struct {
	http fastshot.ClientHttpMethods
}

// NewClient builds a bearer-authenticated JSON client for baseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := fastshot.NewClient(baseURL)
	c.Auth().BearerToken(apiKey)

	return &Client{
		http: c.Config().SetTimeout(timeout).
			Config().SetFollowRedirects(true).
			Header().Add("Content-Type", "application/json").
			Build(),
	}
}

// CreateResponse performs a single API call. A returned error means the
// request never completed (network level); HTTP error statuses come back in
// the result for the caller's retry policy to classify.
func (c *Client) CreateResponse(ctx context.Context, req responsesRequest) (apiResult, error) {
	resp, err := c.http.POST("/v1/responses").
		Context().Set(ctx).
		Header().Add("Accept", "application/json").
		Body().AsJSON(req).
		Send()
	if err != nil {
		return apiResult{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body().Close()

	result := apiResult{
		status:     resp.Status().Code(),
		retryAfter: resp.Header().Get("Retry-After"),
	}
	if !resp.Status().IsError() {
		if err := resp.Body().AsJSON(&result.payload); err != nil {
			return apiResult{}, fmt.Errorf("parse response: %w", err)
		}
	}
	return result, nil
}

// joinedText concatenates all text segments from message output items.
func (p responsesPayload) joinedText() string {
	var parts []string
	for _, item := range p.Output {
		if item.Type != "message" {
			continue
		}
		for _, seg := range item.Content {
			if seg.Type != "output_text" && seg.Type != "text" {
				continue
			}
			text := seg.Text
			if text == "" {
				text = seg.Value
			}
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	return joinFields(parts)
}
