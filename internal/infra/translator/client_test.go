package translator_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxlate/internal/domain"
	"voxlate/internal/infra/translator"
)

func TestClient_Translate(t *testing.T) {
	var got map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/translate" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"translation": "नमस्ते दुनिया"})
	}))
	defer server.Close()

	client := translator.NewClient(server.URL, "/translate")

	text, err := client.Translate(context.Background(), "hello world", "en", "hi")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}

	if text != "नमस्ते दुनिया" {
		t.Errorf("translation: got %q", text)
	}
	if got["text"] != "hello world" || got["from"] != "en" || got["to"] != "hi" {
		t.Errorf("request body: got %v", got)
	}
}

func TestClient_TranslateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"model crashed"}`},
		{name: "missing translation", status: http.StatusOK, body: `{}`, wantErr: domain.ErrEmptyResult},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := translator.NewClient(server.URL+"/", "/translate")

			_, err := client.Translate(context.Background(), "hello", "en", "hi")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_TranslateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := translator.NewClient(url, "/translate")

	if _, err := client.Translate(context.Background(), "hello", "en", "hi"); err == nil {
		t.Error("expected transport error")
	}
}
