// Package mockroute provides a development-time route table. When a router
// is injected into the client, matching requests short-circuit the real
// transport and return canned payloads. It is an explicit collaborator:
// construct one, register routes, pass it to the client. No global state.
package mockroute

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultChunkSize is the number of characters per simulated stream chunk.
	DefaultChunkSize = 5
	// DefaultChunkDelay is the pause between simulated chunks.
	DefaultChunkDelay = 5 * time.Millisecond
)

// Router matches (method, path-or-pattern) pairs to canned responses.
// A pattern ending in "*" matches any path with the preceding prefix.
type Router struct {
	mu      sync.RWMutex
	routes  map[string]any
	streams map[string]string

	chunkSize  int
	chunkDelay time.Duration
}

// New creates an empty router with default streaming simulation parameters.
func New() *Router {
	return &Router{
		routes:     make(map[string]any),
		streams:    make(map[string]string),
		chunkSize:  DefaultChunkSize,
		chunkDelay: DefaultChunkDelay,
	}
}

// SetChunking overrides the simulated stream chunk size and inter-chunk delay.
func (r *Router) SetChunking(size int, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size > 0 {
		r.chunkSize = size
	}
	r.chunkDelay = delay
}

// Handle registers a canned JSON payload for a non-streaming route.
func (r *Router) Handle(method, pattern string, body any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[routeKey(method, pattern)] = body
}

// HandleStream registers canned text for a streaming route. The text is
// sliced into chunks when the route is hit.
func (r *Router) HandleStream(method, pattern, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streams[routeKey(method, pattern)] = text
}

// Lookup returns the canned payload for a request, if one matches.
func (r *Router) Lookup(method, path string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := matchKey(r.routes, method, path)
	if !ok {
		return nil, false
	}
	return r.routes[key], true
}

// LookupStream returns the canned stream text for a request, if one matches.
func (r *Router) LookupStream(method, path string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := matchKey(r.streams, method, path)
	if !ok {
		return "", false
	}
	return r.streams[key], true
}

// Stream simulates a streaming response by slicing text into fixed-size
// pieces, invoking emit for each with the accumulated text so far, and
// pausing briefly between pieces. Returns the full text on completion.
func (r *Router) Stream(ctx context.Context, text string, emit func(chunk, accumulated string)) (string, error) {
	r.mu.RLock()
	size := r.chunkSize
	delay := r.chunkDelay
	r.mu.RUnlock()

	var accumulated strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[i:end])
		accumulated.WriteString(chunk)
		if emit != nil {
			emit(chunk, accumulated.String())
		}

		if delay > 0 && end < len(runes) {
			select {
			case <-ctx.Done():
				return accumulated.String(), ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return accumulated.String(), nil
}

func routeKey(method, pattern string) string {
	return strings.ToUpper(method) + " " + pattern
}

func matchKey[V any](table map[string]V, method, path string) (string, bool) {
	exact := routeKey(method, path)
	if _, ok := table[exact]; ok {
		return exact, true
	}
	prefix := strings.ToUpper(method) + " "
	for key := range table {
		pattern, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		if strings.HasSuffix(pattern, "*") && strings.HasPrefix(path, strings.TrimSuffix(pattern, "*")) {
			return key, true
		}
	}
	return "", false
}
