// Package quizapi fetches quiz questions from a running nckh server.
package quizapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/nckh/internal/quiz"
)

// Path is the question endpoint relative to the server base URL.
const Path = "/api/quiz"

// maxBody bounds how much of a response is read.
const maxBody = 4 << 20

type request struct {
	ChapterID string `json:"chapterId"`
}

type response struct {
	Data  []quiz.Question `json:"data"`
	Error string          `json:"error"`
}

// Client is a quiz.Source backed by the HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL. A nil httpClient means
// http.DefaultClient. The request carries no timeout of its own; it ends when
// ctx is cancelled or the transport fails.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Load posts the chapter id and decodes the answer into a LoadResult.
// Every failure becomes a quiz.LoadFailed; Load never retries.
func (c *Client) Load(ctx context.Context, chapterID string) quiz.LoadResult {
	body, err := json.Marshal(request{ChapterID: chapterID})
	if err != nil {
		return quiz.Failed(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return quiz.Failed(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return quiz.Failed(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return quiz.Failed(fmt.Sprintf("read response: %v", err))
	}

	var out response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The error field is used when present; anything else falls back to
		// the generic message.
		if decodeErr == nil && out.Error != "" {
			return quiz.Failed(out.Error)
		}
		return quiz.Failed("")
	}
	if decodeErr != nil {
		return quiz.Failed(fmt.Sprintf("decode response: %v", decodeErr))
	}
	return quiz.Check(out.Data)
}

var _ quiz.Source = (*Client)(nil)
