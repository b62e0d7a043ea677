package types

// ChatRequest is the body for POST /api/chat and /api/chat-stream.
// Generation parameters left zero fall back to the backend's stored config.
type ChatRequest struct {
	Provider       string   `json:"provider"`
	Message        string   `json:"message"`
	ConversationID string   `json:"conversation_id,omitempty"`
	Model          string   `json:"model,omitempty"`
	APIKey         string   `json:"apiKey,omitempty"`
	BaseURL        string   `json:"baseUrl,omitempty"`
	MaxTokens      int      `json:"maxTokens,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
}

// ChatResponse is the full body of a non-streaming chat reply.
type ChatResponse struct {
	Envelope
	Response       string `json:"response,omitempty"`
	Model          string `json:"model,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Model describes one entry of GET /api/models.
type Model struct {
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
}

// ModelsResponse is the body of GET /api/models.
type ModelsResponse struct {
	Envelope
	Models []Model `json:"models,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Envelope
	Status   string `json:"status,omitempty"`
	Provider string `json:"provider,omitempty"`
}
