package fable

import (
	"context"
	"net/url"

	"github.com/fabledesk/fable-go/internal/reasoning"
	"github.com/fabledesk/fable-go/pkg/types"
)

// The typed endpoint surface. Each method is a thin wrapper over the
// dispatcher and returns the entire decoded body, envelope included.

func withConversation(path, conversationID string) string {
	if conversationID == "" {
		return path
	}
	return path + "?conversation_id=" + url.QueryEscape(conversationID)
}

// Health checks backend liveness and the active provider.
func (c *Client) Health(ctx context.Context) (types.HealthResponse, error) {
	return Get[types.HealthResponse](ctx, c, "/api/health", nil)
}

// Models lists the models available from the configured providers.
func (c *Client) Models(ctx context.Context) (types.ModelsResponse, error) {
	return Get[types.ModelsResponse](ctx, c, "/api/models", nil)
}

// Stop asks the backend to abort any in-flight generation.
func (c *Client) Stop(ctx context.Context) (types.MessageResponse, error) {
	return Post[types.MessageResponse](ctx, c, "/api/stop", nil, nil)
}

// Chat sends a message and waits for the complete reply. Reasoning traces
// are stripped from the reply text.
func (c *Client) Chat(ctx context.Context, req *types.ChatRequest) (types.ChatResponse, error) {
	resp, err := Post[types.ChatResponse](ctx, c, "/api/chat", req, nil)
	if err != nil {
		return resp, err
	}
	resp.Response = reasoning.StripThinkTags(resp.Response)
	return resp, nil
}

// ChatStream sends a message and streams the reply through onChunk. Chunks
// are delivered raw; the returned final text has reasoning traces stripped.
func (c *Client) ChatStream(ctx context.Context, req *types.ChatRequest, onChunk ChunkFunc) (string, error) {
	text, err := c.PostStream(ctx, "/api/chat-stream", req, onChunk, nil)
	if err != nil {
		return text, err
	}
	return reasoning.StripThinkTags(text), nil
}

// GetConversation fetches the message history of a conversation.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (types.ConversationResponse, error) {
	return Get[types.ConversationResponse](ctx, c, withConversation("/api/conversation", conversationID), nil)
}

// ListConversations lists all stored conversation IDs.
func (c *Client) ListConversations(ctx context.Context) (types.ConversationsListResponse, error) {
	return Get[types.ConversationsListResponse](ctx, c, "/api/conversations/list", nil)
}

// ClearConversation deletes a conversation's history.
func (c *Client) ClearConversation(ctx context.Context, conversationID string) (types.MessageResponse, error) {
	return Delete[types.MessageResponse](ctx, c, withConversation("/api/conversation", conversationID), nil)
}

// DeleteLastMessage removes the most recent exchange from a conversation.
func (c *Client) DeleteLastMessage(ctx context.Context, conversationID string) (types.MessageResponse, error) {
	body := map[string]string{"conversation_id": conversationID}
	return Post[types.MessageResponse](ctx, c, "/api/conversation/delete-last-message", body, nil)
}

// GetConversationSettings fetches the story settings of a conversation.
func (c *Client) GetConversationSettings(ctx context.Context, conversationID string) (types.SettingsResponse, error) {
	return Get[types.SettingsResponse](ctx, c, withConversation("/api/conversation/settings", conversationID), nil)
}

// SaveConversationSettings stores story settings for a conversation.
func (c *Client) SaveConversationSettings(ctx context.Context, settings *types.ConversationSettings) (types.SettingsResponse, error) {
	return Post[types.SettingsResponse](ctx, c, "/api/conversation/settings", settings, nil)
}

// GenerateOutline asks the model to draft a story outline from the
// conversation's background.
func (c *Client) GenerateOutline(ctx context.Context, req *types.OutlineRequest) (types.OutlineResponse, error) {
	return Post[types.OutlineResponse](ctx, c, "/api/conversation/generate-outline", req, nil)
}

// GenerateOutlineStream drafts a story outline, streaming text through
// onChunk, and returns the final accumulated outline.
func (c *Client) GenerateOutlineStream(ctx context.Context, req *types.OutlineRequest, onChunk ChunkFunc) (string, error) {
	text, err := c.PostStream(ctx, "/api/conversation/generate-outline-stream", req, onChunk, nil)
	if err != nil {
		return text, err
	}
	return reasoning.StripThinkTags(text), nil
}

// GetSummary fetches the stored story summary.
func (c *Client) GetSummary(ctx context.Context, conversationID string) (types.SummaryResponse, error) {
	return Get[types.SummaryResponse](ctx, c, withConversation("/api/conversation/summary", conversationID), nil)
}

// SaveSummary stores an edited story summary.
func (c *Client) SaveSummary(ctx context.Context, req *types.SummaryRequest) (types.SummaryResponse, error) {
	return Post[types.SummaryResponse](ctx, c, "/api/conversation/summary", req, nil)
}

// GenerateSummary asks the model to summarize the story so far.
func (c *Client) GenerateSummary(ctx context.Context, req *types.SummaryRequest) (types.SummaryResponse, error) {
	return Post[types.SummaryResponse](ctx, c, "/api/conversation/summary/generate", req, nil)
}

// GenerateSummaryStream summarizes the story, streaming text through
// onChunk, and returns the final accumulated summary.
func (c *Client) GenerateSummaryStream(ctx context.Context, req *types.SummaryRequest, onChunk ChunkFunc) (string, error) {
	text, err := c.PostStream(ctx, "/api/conversation/summary/generate-stream", req, onChunk, nil)
	if err != nil {
		return text, err
	}
	return reasoning.StripThinkTags(text), nil
}

// GetProgress fetches a conversation's section-by-section generation state.
func (c *Client) GetProgress(ctx context.Context, conversationID string) (types.ProgressResponse, error) {
	return Get[types.ProgressResponse](ctx, c, withConversation("/api/conversation/progress", conversationID), nil)
}

// SaveProgress stores generation progress.
func (c *Client) SaveProgress(ctx context.Context, req *types.ProgressRequest) (types.ProgressResponse, error) {
	return Post[types.ProgressResponse](ctx, c, "/api/conversation/progress", req, nil)
}

// ConfirmOutline marks the outline as accepted so generation can begin.
func (c *Client) ConfirmOutline(ctx context.Context, conversationID string) (types.ProgressResponse, error) {
	body := map[string]string{"conversation_id": conversationID}
	return Post[types.ProgressResponse](ctx, c, "/api/conversation/progress/confirm-outline", body, nil)
}

// GetCharacters fetches a conversation's character roster.
func (c *Client) GetCharacters(ctx context.Context, conversationID string) (types.CharactersResponse, error) {
	return Get[types.CharactersResponse](ctx, c, withConversation("/api/conversation/characters", conversationID), nil)
}

// UpdateCharacters replaces a conversation's character roster.
func (c *Client) UpdateCharacters(ctx context.Context, req *types.CharactersRequest) (types.CharactersResponse, error) {
	return Post[types.CharactersResponse](ctx, c, "/api/conversation/characters/update", req, nil)
}

// GenerateCharacters asks the model to propose characters for the story.
func (c *Client) GenerateCharacters(ctx context.Context, req *types.CharactersRequest) (types.CharactersResponse, error) {
	return Post[types.CharactersResponse](ctx, c, "/api/conversation/characters/generate", req, nil)
}

// GenerateStory generates the next story section in one shot.
func (c *Client) GenerateStory(ctx context.Context, req *types.StoryRequest) (types.StoryResponse, error) {
	return Post[types.StoryResponse](ctx, c, "/api/story/generate", req, nil)
}

// GenerateStoryStream generates the next story section, streaming text
// through onChunk, and returns the final accumulated section.
func (c *Client) GenerateStoryStream(ctx context.Context, req *types.StoryRequest, onChunk ChunkFunc) (string, error) {
	text, err := c.PostStream(ctx, "/api/story/generate-stream", req, onChunk, nil)
	if err != nil {
		return text, err
	}
	return reasoning.StripThinkTags(text), nil
}

// ConfirmStory accepts the generated section and advances progress.
func (c *Client) ConfirmStory(ctx context.Context, req *types.StoryRequest) (types.StoryResponse, error) {
	return Post[types.StoryResponse](ctx, c, "/api/story/confirm", req, nil)
}

// RewriteStory regenerates the current section from scratch.
func (c *Client) RewriteStory(ctx context.Context, req *types.StoryRequest) (types.StoryResponse, error) {
	return Post[types.StoryResponse](ctx, c, "/api/story/rewrite", req, nil)
}

// ModifyStory revises the current section following an instruction.
func (c *Client) ModifyStory(ctx context.Context, req *types.StoryRequest) (types.StoryResponse, error) {
	return Post[types.StoryResponse](ctx, c, "/api/story/modify", req, nil)
}

// GetLanguage fetches the stored UI language preference.
func (c *Client) GetLanguage(ctx context.Context) (types.AppSettingsResponse, error) {
	return Get[types.AppSettingsResponse](ctx, c, "/api/app-settings/language", nil)
}

// SetLanguage stores the UI language preference.
func (c *Client) SetLanguage(ctx context.Context, language string) (types.AppSettingsResponse, error) {
	return Post[types.AppSettingsResponse](ctx, c, "/api/app-settings/language", &types.LanguageRequest{Language: language}, nil)
}
