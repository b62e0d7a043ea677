package types

// Message is one chat record inside a conversation.
type Message struct {
	ID        int    `json:"id,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ConversationResponse is the body of GET /api/conversation.
type ConversationResponse struct {
	Envelope
	Messages       []Message `json:"messages,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
}

// ConversationsListResponse is the body of GET /api/conversations/list.
type ConversationsListResponse struct {
	Envelope
	Conversations []string `json:"conversations,omitempty"`
	Count         int      `json:"count,omitempty"`
}

// ConversationSettings mirrors the backend's per-conversation story settings.
type ConversationSettings struct {
	ID                          int               `json:"id,omitempty"`
	ConversationID              string            `json:"conversation_id,omitempty"`
	Title                       string            `json:"title,omitempty"`
	Background                  string            `json:"background,omitempty"`
	Characters                  []string          `json:"characters,omitempty"`
	CharacterPersonality        map[string]string `json:"character_personality,omitempty"`
	CharacterIsMain             map[string]bool   `json:"character_is_main,omitempty"`
	Outline                     string            `json:"outline,omitempty"`
	AllowAutoGenerateCharacters bool              `json:"allow_auto_generate_characters,omitempty"`
	AdditionalSettings          map[string]any    `json:"additional_settings,omitempty"`
	CreatedAt                   string            `json:"created_at,omitempty"`
	UpdatedAt                   string            `json:"updated_at,omitempty"`
}

// SettingsResponse is the body of GET|POST /api/conversation/settings.
type SettingsResponse struct {
	Envelope
	Settings *ConversationSettings `json:"settings,omitempty"`
}

// SummaryResponse is the body of the summary get/save/generate endpoints.
type SummaryResponse struct {
	Envelope
	Summary        string `json:"summary,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// SummaryRequest is the body for POST /api/conversation/summary and
// /api/conversation/summary/generate.
type SummaryRequest struct {
	ConversationID string `json:"conversation_id"`
	Summary        string `json:"summary,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
}
