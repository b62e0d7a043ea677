// Package fable is a Go client for the local story-writing backend.
//
// The client resolves the backend's base URL per call (the listening port
// can change between launches), dispatches GET/POST/DELETE requests plus a
// streaming POST, enforces per-call timeouts, interprets the backend's
// {success, error, code} JSON envelope, and normalizes every failure into a
// single *apierr.Error before it reaches the caller.
//
// Example:
//
//	client, err := fable.New(fable.WithBaseURL("http://127.0.0.1:5001"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	resp, err := client.Chat(ctx, &fable.ChatRequest{
//	    Provider: "ollama",
//	    Message:  "Continue the story.",
//	})
//	if err != nil {
//	    if apiErr, ok := apierr.As(err); ok && apiErr.Status == http.StatusRequestTimeout {
//	        // generation exceeded the call budget
//	    }
//	    return err
//	}
//	fmt.Println(resp.Response)
//
// Streaming calls deliver incremental text through a callback and return the
// full accumulated text:
//
//	text, err := client.ChatStream(ctx, req, func(chunk, accumulated string) {
//	    fmt.Print(chunk)
//	})
package fable

import (
	"github.com/fabledesk/fable-go/pkg/apierr"
	"github.com/fabledesk/fable-go/pkg/mockroute"
	"github.com/fabledesk/fable-go/pkg/types"
)

// Re-exported types so most callers only import the root package.
type (
	// APIError is the uniform error type for all client failures.
	APIError = apierr.Error

	// MockRouter short-circuits requests with canned responses in
	// development and tests.
	MockRouter = mockroute.Router

	ChatRequest          = types.ChatRequest
	ChatResponse         = types.ChatResponse
	ConversationSettings = types.ConversationSettings
	StoryProgress        = types.StoryProgress
	Character            = types.Character
	AppSettings          = types.AppSettings
)

// NewMockRouter creates an empty mock route table to inject with
// WithMockRouter.
func NewMockRouter() *MockRouter {
	return mockroute.New()
}
