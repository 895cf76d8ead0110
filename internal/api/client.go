// Package api is a thin client for the remote donation API. Authenticated
// calls take the credential token explicitly; nothing is injected for the
// caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/plsfundme/portal/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

func New(p Params) (*Client, error) {
	return NewClient(p.Config.API.BaseURL, &http.Client{Timeout: p.Config.API.Timeout()}, p.Log)
}

func NewClient(baseURL string, hc *http.Client, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: unsupported scheme", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
	}, nil
}

// do sends body as json (when non-nil) and decodes a 2xx response into out
// (when non-nil). Non-2xx responses become *Error.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp)
		c.log.Debug("api error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// messageResponse is the API's {"message": "..."} envelope.
type messageResponse struct {
	Message string `json:"message"`
}

func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	var m struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(b, &m); err == nil {
		apiErr.Message = m.Message
		if apiErr.Message == "" {
			apiErr.Message = m.Msg
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func pathID(id string) string {
	return url.PathEscape(id)
}

