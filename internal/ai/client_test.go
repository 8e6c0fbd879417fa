package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dharmasatrya/triotrip/internal/upstream"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "plan it" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Enabled: true, APIKey: "key", BaseURL: srv.URL})
	got, err := c.Complete(context.Background(), "plan it", "be terse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"ok":true}` {
		t.Errorf("got %q", got)
	}
}

func TestComplete_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		status int
		body   string
		want   upstream.Kind
	}{
		{"disabled", Config{Enabled: false, APIKey: "key"}, 0, "", upstream.Disabled},
		{"missing key", Config{Enabled: true}, 0, "", upstream.Misconfigured},
		{"rate limited", Config{Enabled: true, APIKey: "key"}, http.StatusTooManyRequests, `{}`, upstream.RateLimited},
		{"bad key", Config{Enabled: true, APIKey: "key"}, http.StatusUnauthorized, `{}`, upstream.Misconfigured},
		{"server error", Config{Enabled: true, APIKey: "key"}, http.StatusInternalServerError, `{}`, upstream.Failed},
		{"empty choices", Config{Enabled: true, APIKey: "key"}, http.StatusOK, `{"choices":[]}`, upstream.Failed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tt.cfg.BaseURL = srv.URL
			_, err := NewClient(tt.cfg).Complete(context.Background(), "hi", "")
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := upstream.KindOf(err); got != tt.want {
				t.Errorf("kind = %v, want %v (%v)", got, tt.want, err)
			}
			if tt.status == 0 && calls != 0 {
				t.Error("no request should be sent when the client is not usable")
			}
		})
	}
}

func TestStatus(t *testing.T) {
	if s := NewClient(Config{}).Status(); s != "disabled" {
		t.Errorf("got %q", s)
	}
	if s := NewClient(Config{Enabled: true}).Status(); s != "misconfigured" {
		t.Errorf("got %q", s)
	}
	if s := NewClient(Config{Enabled: true, APIKey: "k"}).Status(); s != "ok" {
		t.Errorf("got %q", s)
	}
}
