package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:     baseURL,
		ServiceName: "testsvc",
		RetryWait:   time.Millisecond,
	})
}

func TestClient_PostDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]string{"echo": body["msg"]})
	}))
	defer server.Close()

	var result struct {
		Echo string `json:"echo"`
	}
	err := newTestClient(server.URL).Post(context.Background(), "/test",
		map[string]string{"msg": "hello"}, &result)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if result.Echo != "hello" {
		t.Errorf("Echo = %q, want hello", result.Echo)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	var result map[string]string
	err := newTestClient(server.URL).Get(context.Background(), "/flaky", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("attempts = %d, want 3", attempts.Load())
	}
}

func TestClient_RetryAfterHeaderHonored(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	var result map[string]string
	err := newTestClient(server.URL).Get(context.Background(), "/limited", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "bad input"})
	}))
	defer server.Close()

	err := newTestClient(server.URL).Get(context.Background(), "/bad", nil)
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Get() error = %v, want ErrBadRequest", err)
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1", attempts.Load())
	}
}

func TestClient_ParseErrorFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"openai nested", `{"error": {"message": "Incorrect API key"}}`, "Incorrect API key"},
		{"flat message", `{"message": "not found"}`, "not found"},
		{"flat error string", `{"error": "broken"}`, "broken"},
		{"garbage body", `not json at all`, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newTestClient(server.URL).Get(context.Background(), "/auth", nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Get() error = %v, want *APIError", err)
			}
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
			if apiErr.StatusCode != http.StatusUnauthorized {
				t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
			}
		})
	}
}

func TestClient_BeforeRequestHook(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		ServiceName: "testsvc",
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer token")
		},
	})
	if err := client.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotHeader != "Bearer token" {
		t.Errorf("Authorization = %q, want Bearer token", gotHeader)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:     server.URL,
		ServiceName: "testsvc",
		RetryWait:   time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Request(ctx, http.MethodGet, "/slow", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Request() error = %v, want context.DeadlineExceeded", err)
	}
}
