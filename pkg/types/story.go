package types

// StoryProgress mirrors the backend's per-conversation generation progress.
type StoryProgress struct {
	ID                   int    `json:"id,omitempty"`
	ConversationID       string `json:"conversation_id,omitempty"`
	CurrentSection       int    `json:"current_section"`
	TotalSections        int    `json:"total_sections,omitempty"`
	LastGeneratedContent string `json:"last_generated_content,omitempty"`
	LastGeneratedSection int    `json:"last_generated_section,omitempty"`
	Status               string `json:"status,omitempty"`
	OutlineConfirmed     bool   `json:"outline_confirmed,omitempty"`
	CreatedAt            string `json:"created_at,omitempty"`
	UpdatedAt            string `json:"updated_at,omitempty"`
}

// ProgressResponse is the body of GET|POST /api/conversation/progress.
type ProgressResponse struct {
	Envelope
	Progress *StoryProgress `json:"progress,omitempty"`
}

// ProgressRequest is the body for saving progress or confirming an outline.
type ProgressRequest struct {
	ConversationID   string `json:"conversation_id"`
	CurrentSection   int    `json:"current_section,omitempty"`
	TotalSections    int    `json:"total_sections,omitempty"`
	Status           string `json:"status,omitempty"`
	OutlineConfirmed bool   `json:"outline_confirmed,omitempty"`
}

// StoryRequest is the body for POST /api/story/{generate-stream,confirm,rewrite,modify}.
type StoryRequest struct {
	ConversationID string `json:"conversation_id"`
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
	Content        string `json:"content,omitempty"`
	Instruction    string `json:"instruction,omitempty"`
	Section        int    `json:"section,omitempty"`
}

// StoryResponse is the full body of the non-streaming story operations.
type StoryResponse struct {
	Envelope
	Story          string `json:"story,omitempty"`
	Section        int    `json:"section,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message,omitempty"`
}

// OutlineRequest is the body for POST /api/conversation/generate-outline.
type OutlineRequest struct {
	ConversationID string `json:"conversation_id"`
	Background     string `json:"background"`
	Provider       string `json:"provider"`
	Model          string `json:"model,omitempty"`
}

// OutlineResponse is the body of the outline generation endpoint.
type OutlineResponse struct {
	Envelope
	Outline string `json:"outline,omitempty"`
}

// Character describes one story character.
type Character struct {
	Name        string `json:"name"`
	Personality string `json:"personality,omitempty"`
	IsMain      bool   `json:"is_main,omitempty"`
	Status      string `json:"status,omitempty"`
}

// CharactersResponse is the body of the character endpoints.
type CharactersResponse struct {
	Envelope
	Characters []Character `json:"characters,omitempty"`
}

// CharactersRequest is the body for updating or generating characters.
type CharactersRequest struct {
	ConversationID string      `json:"conversation_id"`
	Characters     []Character `json:"characters,omitempty"`
	Provider       string      `json:"provider,omitempty"`
	Model          string      `json:"model,omitempty"`
}
