package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatbotFallbackWithoutService(t *testing.T) {
	svc := NewChatbotService("")

	reply := svc.Ask(context.Background(), &ChatInput{
		Message:   "Quels sont vos forfaits ?",
		SessionID: "abc",
	})

	assert.Contains(t, reply.Response, "forfaits")
	assert.Equal(t, "abc", reply.SessionID)
	assert.NotEmpty(t, reply.SuggestedActions)
	assert.NotEmpty(t, reply.Timestamp)
}

func TestChatbotForwardsToService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input ChatInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "bonjour", input.Message)

		json.NewEncoder(w).Encode(ChatReply{
			Response:   "Bonjour, comment puis-je vous aider ?",
			Confidence: 0.95,
			SessionID:  input.SessionID,
		})
	}))
	defer srv.Close()

	svc := NewChatbotService(srv.URL)
	reply := svc.Ask(context.Background(), &ChatInput{Message: "bonjour", SessionID: "s1"})

	assert.Equal(t, "Bonjour, comment puis-je vous aider ?", reply.Response)
	assert.Equal(t, 0.95, reply.Confidence)
}

func TestChatbotFallsBackOnServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewChatbotService(srv.URL)
	reply := svc.Ask(context.Background(), &ChatInput{Message: "bonjour"})

	assert.NotEmpty(t, reply.Response)
	assert.NotEmpty(t, reply.Timestamp)
}
