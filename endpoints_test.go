package fable

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabledesk/fable-go/pkg/types"
)

func TestChat_StripsReasoningTrace(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK,
		`{"success": true, "response": "<think>plot beats</think>The dragon slept.", "model": "llama3"}`))

	resp, err := client.Chat(context.Background(), &types.ChatRequest{
		Provider: "ollama",
		Message:  "continue",
	})
	require.NoError(t, err)
	assert.Equal(t, "The dragon slept.", resp.Response)
	assert.Equal(t, "llama3", resp.Model)
}

func TestChatStream_StripsReasoningFromFinalOnly(t *testing.T) {
	client := newTestClient(t, streamHandler(
		"data: <think>outline first</think>",
		"data: The tower fell.",
		`data: {"done": true}`,
	))

	var chunks []string
	final, err := client.ChatStream(context.Background(), &types.ChatRequest{
		Provider: "ollama",
		Message:  "go",
	}, func(chunk, _ string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)

	// Raw chunks pass through untouched; only the returned text is cleaned.
	assert.Equal(t, []string{"<think>outline first</think>", "The tower fell."}, chunks)
	assert.Equal(t, "The tower fell.", final)
}

func TestEndpoints_MethodsAndPaths(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
		wantQuery  string
	}{
		{
			name:       "health",
			call:       func() error { _, err := client.Health(ctx); return err },
			wantMethod: http.MethodGet,
			wantPath:   "/api/health",
		},
		{
			name:       "clear conversation",
			call:       func() error { _, err := client.ClearConversation(ctx, "story 1"); return err },
			wantMethod: http.MethodDelete,
			wantPath:   "/api/conversation",
			wantQuery:  "conversation_id=story+1",
		},
		{
			name:       "get settings",
			call:       func() error { _, err := client.GetConversationSettings(ctx, "abc"); return err },
			wantMethod: http.MethodGet,
			wantPath:   "/api/conversation/settings",
			wantQuery:  "conversation_id=abc",
		},
		{
			name: "save progress",
			call: func() error {
				_, err := client.SaveProgress(ctx, &types.ProgressRequest{ConversationID: "abc", CurrentSection: 2})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/conversation/progress",
		},
		{
			name:       "confirm outline",
			call:       func() error { _, err := client.ConfirmOutline(ctx, "abc"); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/api/conversation/progress/confirm-outline",
		},
		{
			name: "generate characters",
			call: func() error {
				_, err := client.GenerateCharacters(ctx, &types.CharactersRequest{ConversationID: "abc"})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/conversation/characters/generate",
		},
		{
			name: "confirm story",
			call: func() error {
				_, err := client.ConfirmStory(ctx, &types.StoryRequest{ConversationID: "abc", Section: 3})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/story/confirm",
		},
		{
			name:       "set language",
			call:       func() error { _, err := client.SetLanguage(ctx, "zh-CN"); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/api/app-settings/language",
		},
		{
			name:       "delete last message",
			call:       func() error { _, err := client.DeleteLastMessage(ctx, "abc"); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/api/conversation/delete-last-message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantQuery, gotQuery)
		})
	}
}

func TestListConversations_DecodesBody(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK,
		`{"success": true, "conversations": ["a", "b"], "count": 2}`))

	resp, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, resp.Conversations)
	assert.Equal(t, 2, resp.Count)
}

func TestGetConversationSettings_DecodesNestedSettings(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK,
		`{"success": true, "settings": {"conversation_id": "abc", "title": "The Fall",
		  "characters": ["Mira"], "character_is_main": {"Mira": true}}}`))

	resp, err := client.GetConversationSettings(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, resp.Settings)
	assert.Equal(t, "The Fall", resp.Settings.Title)
	assert.Equal(t, []string{"Mira"}, resp.Settings.Characters)
	assert.True(t, resp.Settings.CharacterIsMain["Mira"])
}
