// Package types defines the JSON payloads exchanged with the story backend.
// Response structs embed Envelope and carry the whole decoded body, so call
// sites destructure the fields they need instead of receiving a narrowed view.
package types

// Envelope is the wrapper convention used by every non-streaming endpoint:
//
//	Success: { "success": true, ...endpoint-specific fields }
//	Failure: { "success": false, "error": string, "code"?: number }
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Failed reports whether the body carries an explicit success:false.
// A body without a success field is not a failure.
func (e *Envelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// MessageResponse is the generic acknowledgment body returned by mutating
// endpoints such as conversation deletion and story confirmation.
type MessageResponse struct {
	Envelope
	Message string `json:"message,omitempty"`
}
