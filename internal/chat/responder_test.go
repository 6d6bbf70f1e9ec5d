package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anchor/internal/constants"
	"anchor/internal/models"
)

func TestReplySendsRoleTaggedHistory(t *testing.T) {
	var received completionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"You're doing great. "}}]}`)
	}))
	defer server.Close()

	history := []models.ChatMessage{
		models.NewWelcomeMessage(),
		{ID: "m1", Text: "today was hard", Sender: models.SenderUser, Timestamp: time.Now()},
	}

	responder := NewResponder(server.URL, "test-model", "test-key")
	reply := responder.Reply(context.Background(), history, "but I stayed sober")

	if reply != "You're doing great." {
		t.Errorf("Reply = %q, want trimmed completion content", reply)
	}

	if received.Model != "test-model" {
		t.Errorf("model = %q, want test-model", received.Model)
	}
	// system prompt + welcome + user history + new user text
	if len(received.Messages) != 4 {
		t.Fatalf("sent %d messages, want 4", len(received.Messages))
	}
	if received.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", received.Messages[0].Role)
	}
	if received.Messages[1].Role != "assistant" {
		t.Errorf("welcome message role = %q, want assistant", received.Messages[1].Role)
	}
	if received.Messages[2].Role != "user" || received.Messages[2].Content != "today was hard" {
		t.Errorf("history message = %+v", received.Messages[2])
	}
	if received.Messages[3].Content != "but I stayed sober" {
		t.Errorf("new user text = %+v", received.Messages[3])
	}
}

func TestReplyFailuresReturnCannedString(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		close   bool
	}{
		{
			name:  "connection refused",
			close: true,
		},
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "not json")
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[]}`)
			},
		},
		{
			name: "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[{"message":{"content":"   "}}]}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler
			if handler == nil {
				handler = func(w http.ResponseWriter, r *http.Request) {}
			}
			server := httptest.NewServer(handler)
			if tt.close {
				server.Close()
			} else {
				defer server.Close()
			}

			responder := NewResponder(server.URL, "test-model", "test-key")
			reply := responder.Reply(context.Background(), nil, "hello")
			if reply != constants.FallbackReply {
				t.Errorf("Reply = %q, want the canned fallback", reply)
			}
		})
	}
}
