package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewWithAPIURL("token123", "chat42", srv.URL)
	markup := &ReplyMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "watch", URL: "https://example.com/movie/x"}},
		},
	}
	err := client.SendMessage(context.Background(), "<b>hello</b>", markup)
	require.NoError(t, err)

	assert.Equal(t, "/bottoken123/sendMessage", gotPath)
	assert.Equal(t, "chat42", gotPayload["chat_id"])
	assert.Equal(t, "<b>hello</b>", gotPayload["text"])
	assert.Equal(t, "HTML", gotPayload["parse_mode"])
	assert.NotNil(t, gotPayload["reply_markup"])
}

func TestSendPhoto(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewWithAPIURL("token123", "chat42", srv.URL)
	err := client.SendPhoto(context.Background(), "http://img/poster.jpg")
	require.NoError(t, err)

	assert.Equal(t, "/bottoken123/sendPhoto", gotPath)
	assert.Equal(t, "http://img/poster.jpg", gotPayload["photo"])
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	client := NewWithAPIURL("token123", "chat42", srv.URL)
	err := client.SendMessage(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
