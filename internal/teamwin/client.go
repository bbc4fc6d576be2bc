// Package teamwin talks to the remote team win-probability service.
package teamwin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/ecf-team-win/internal/logging"
	"github.com/preston-bernstein/ecf-team-win/internal/metrics"
	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/results"
)

// Config controls how the client reaches the service.
type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Recorder   *metrics.Recorder
}

// Client posts collected teams and decodes the match result.
// It never retries; every failure goes straight back to the caller.
type Client struct {
	url        string
	httpClient httpDoer
	logger     *slog.Logger
	recorder   *metrics.Recorder
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:        normalizeURL(cfg.URL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.APIKey, cfg.Timeout),
		logger:     cfg.Logger,
		recorder:   cfg.Recorder,
		now:        time.Now,
	}
}

const errorField = "error"

// TeamWin sends the teams and returns the service's match result.
// Failures are *RequestError when a response arrived and *NetworkError when
// it did not.
func (c *Client) TeamWin(ctx context.Context, teams ratings.Teams) (results.MatchResult, error) {
	body, err := json.Marshal(teams)
	if err != nil {
		return results.MatchResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return results.MatchResult{}, err
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, 0, start, err)
		return results.MatchResult{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.record(ctx, resp.StatusCode, start, reqErr)
		return results.MatchResult{}, reqErr
	}

	var result results.MatchResult
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		if errors.Is(decodeErr, context.Canceled) || errors.Is(decodeErr, context.DeadlineExceeded) {
			c.record(ctx, resp.StatusCode, start, decodeErr)
			return results.MatchResult{}, &NetworkError{Err: decodeErr}
		}
		reqErr := &RequestError{StatusCode: resp.StatusCode}
		c.record(ctx, resp.StatusCode, start, decodeErr)
		return results.MatchResult{}, reqErr
	}

	c.record(ctx, resp.StatusCode, start, nil)
	return result, nil
}

// readErrorMessage streams the body looking for the "error" field, so the
// message survives even when the rest of an oversized body is cut off.
func readErrorMessage(r io.Reader) string {
	dec := json.NewDecoder(io.LimitReader(r, maxErrorBodySize))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ""
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return ""
		}
		if key == errorField {
			var msg string
			if err := dec.Decode(&msg); err != nil {
				return ""
			}
			return strings.TrimSpace(msg)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return ""
		}
	}
	return ""
}

func (c *Client) record(ctx context.Context, status int, start time.Time, err error) {
	duration := c.now().Sub(start)
	c.recorder.RecordUpstreamAttempt(UpstreamName, status, duration, err)

	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return
	}
	args := []any{
		slog.String(logging.FieldUpstream, UpstreamName),
		slog.Int(logging.FieldStatusCode, status),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	}
	if err != nil {
		logging.Warn(logger, "team-win request failed", append(args, "error", err)...)
		return
	}
	logging.Info(logger, "team-win request complete", args...)
}
