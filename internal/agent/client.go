// Package agent is the HTTP client for the external chat agent.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/sisy/internal/actions"
	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
)

// maxResponseBytes bounds how much of a reply is read.
const maxResponseBytes = 1 << 20

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	InstallID string
	// Token, when set, is sent as a bearer credential.
	Token string
}

type Client struct {
	baseURL   string
	installID string
	token     string
	http      *http.Client
}

// UserContext is the snapshot of user state the agent reasons over.
type UserContext struct {
	Profile map[string]string    `json:"profile"`
	Routine []models.RoutineItem `json:"routine"`
}

// Request is one chat turn.
type Request struct {
	ConversationID *string      `json:"conversation_id"`
	Tab            string       `json:"tab"`
	Text           string       `json:"text"`
	ImageURI       *string      `json:"imageUri,omitempty"`
	UserContext    *UserContext `json:"user_context,omitempty"`
}

// Response is the agent's reply with its decoded action batch.
type Response struct {
	ConversationID string
	AssistantText  string
	Actions        []actions.Action
}

type wireResponse struct {
	ConversationID string          `json:"conversation_id"`
	AssistantText  string          `json:"assistant_text"`
	Actions        json.RawMessage `json:"actions"`
}

// Health is the agent's /health reply.
type Health struct {
	Status     string `json:"status"`
	AgentReady bool   `json:"agent_ready"`
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultAgentTimeout
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = constants.DefaultAgentURL
	}
	return &Client{
		baseURL:   base,
		installID: opts.InstallID,
		token:     opts.Token,
		http:      &http.Client{Timeout: timeout},
	}
}

// Send performs one chat round-trip. Every failure, including a malformed action
// payload, wraps ErrTransport so callers can leave state untouched.
func (c *Client) Send(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, apperrors.Transport(fmt.Errorf("encode request: %w", err))
	}

	var wire wireResponse
	if err := c.do(ctx, http.MethodPost, "/chat", body, &wire); err != nil {
		return Response{}, err
	}

	resp := Response{
		ConversationID: wire.ConversationID,
		AssistantText:  wire.AssistantText,
	}
	if len(wire.Actions) > 0 && string(wire.Actions) != "null" {
		batch, err := actions.Decode(wire.Actions)
		if err != nil {
			return Response{}, apperrors.Transport(err)
		}
		resp.Actions = batch
	}
	logger.Debug("Agent replied", "conversation_id", resp.ConversationID, "actions", len(resp.Actions))
	return resp, nil
}

// Health queries GET /health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Transport(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.installID != "" {
		req.Header.Set(constants.InstallIDHeader, c.installID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return apperrors.Transport(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Transport(fmt.Errorf("read response: %w", err))
	}
	if res.StatusCode != http.StatusOK {
		return apperrors.Transport(fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, errorDetail(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Transport(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// errorDetail extracts the server's {"detail": ...} message when present.
func errorDetail(data []byte) string {
	var e struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Detail != nil {
		return fmt.Sprint(e.Detail)
	}
	return strings.TrimSpace(string(data))
}
