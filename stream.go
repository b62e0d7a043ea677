package fable

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fabledesk/fable-go/internal/metrics"
	"github.com/fabledesk/fable-go/internal/sse"
	"github.com/fabledesk/fable-go/pkg/apierr"
)

// ChunkFunc receives each text chunk as it arrives along with the full text
// accumulated so far.
type ChunkFunc func(chunk, accumulated string)

// PostStream issues a streaming POST and feeds text chunks to onChunk as the
// backend produces them. It returns the final accumulated text. An error
// frame in the stream aborts immediately; a done frame or EOF ends the
// stream successfully.
func (c *Client) PostStream(ctx context.Context, path string, body any, onChunk ChunkFunc, cfg *RequestConfig) (string, error) {
	if limiter := c.limiter.Load(); limiter != nil && !limiter.Allow() {
		metrics.ObserveError(http.MethodPost, path, "rate_limited")
		return "", apierr.NewHTTP(http.StatusTooManyRequests, "Rate limit exceeded")
	}

	if c.mock != nil {
		if text, ok := c.mock.LookupStream(http.MethodPost, path); ok {
			c.log().Debug("mock stream hit", "path", path)
			accumulated, err := c.mock.Stream(ctx, text, onChunk)
			if err != nil {
				return accumulated, apierr.Wrap(transportError(err))
			}
			return accumulated, nil
		}
	}

	timeout := c.StreamTimeout()
	skip := false
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		skip = cfg.SkipErrorHandling
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", apierr.Wrap(err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := apierr.Wrap(transportError(err))
		metrics.ObserveError(http.MethodPost, path, errorReason(apiErr))
		c.log().RedactedError("stream request failed", "path", path, "error", apiErr)
		return "", apiErr
	}

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := c.readBody(resp.Body)
		_ = resp.Body.Close()
		err := validateEnvelope(resp.StatusCode, raw, skip)
		metrics.ObserveError(http.MethodPost, path, "http_status")
		return "", apierr.Wrap(err)
	}

	if resp.Body == nil {
		return "", apierr.New("Stream reader not available")
	}
	defer resp.Body.Close()

	var accumulated strings.Builder
	chunks := 0
	scanner := sse.NewScanner(resp.Body)

	for scanner.Scan() {
		frame := sse.ParseLine(scanner.Bytes())
		switch frame.Kind {
		case sse.KindText:
			accumulated.WriteString(frame.Text)
			chunks++
			if onChunk != nil {
				onChunk(frame.Text, accumulated.String())
			}
		case sse.KindError:
			metrics.ObserveError(http.MethodPost, path, "stream_error")
			return accumulated.String(), apierr.New(frame.Message)
		case sse.KindTerminator:
			metrics.ObserveStream(path, chunks, time.Since(start))
			return accumulated.String(), nil
		}
	}

	if err := scanner.Err(); err != nil {
		apiErr := apierr.Wrap(transportError(err))
		metrics.ObserveError(http.MethodPost, path, errorReason(apiErr))
		return accumulated.String(), apiErr
	}

	// EOF without a done frame still counts as a completed stream.
	metrics.ObserveStream(path, chunks, time.Since(start))
	return accumulated.String(), nil
}
