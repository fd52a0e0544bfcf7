package tts_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voxlate/internal/domain"
	"voxlate/internal/infra/tts"
)

func TestClient_Synthesize(t *testing.T) {
	var got map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tts" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "success",
			"audio_url": "/audio/output_123.wav",
		})
	}))
	defer server.Close()

	client := tts.NewClient(tts.Options{
		BaseURL:    server.URL,
		Path:       "/tts",
		SpeakerWAV: "/voices/reference.wav",
		Timeout:    30 * time.Second,
	})

	audio, err := client.Synthesize(context.Background(), "नमस्ते", "hi")
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if want := domain.Locator(server.URL + "/audio/output_123.wav"); audio != want {
		t.Errorf("audio: got %s, want %s", audio, want)
	}
	if got["speaker_wav"] != "/voices/reference.wav" {
		t.Errorf("speaker_wav: got %v", got["speaker_wav"])
	}
	if got["language"] != "hi" {
		t.Errorf("language: got %v", got["language"])
	}
	if got["timeout"] != float64(30) {
		t.Errorf("timeout: got %v, want 30", got["timeout"])
	}
}

func TestClient_SynthesizeSubSecondTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    any
	}{
		{name: "half second", timeout: 500 * time.Millisecond, want: float64(1)},
		{name: "just over a second", timeout: 1500 * time.Millisecond, want: float64(2)},
		{name: "unbounded", timeout: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&got)
				json.NewEncoder(w).Encode(map[string]string{
					"status":    "success",
					"audio_url": "/audio/a.wav",
				})
			}))
			defer server.Close()

			client := tts.NewClient(tts.Options{BaseURL: server.URL, Path: "/tts", Timeout: tt.timeout})

			if _, err := client.Synthesize(context.Background(), "hi", "en"); err != nil {
				t.Fatalf("Synthesize error: %v", err)
			}
			if got["timeout"] != tt.want {
				t.Errorf("timeout: got %v, want %v", got["timeout"], tt.want)
			}
		})
	}
}

func TestClient_SynthesizeReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "Speaker file not found",
		})
	}))
	defer server.Close()

	client := tts.NewClient(tts.Options{BaseURL: server.URL, Path: "/tts"})

	_, err := client.Synthesize(context.Background(), "hello", "hi")

	message, ok := domain.ServiceMessage(err)
	if !ok || message != "Speaker file not found" {
		t.Errorf("service message: got %q (%v)", message, err)
	}
	if errors.Is(err, domain.ErrTimeout) {
		t.Error("reported failure must not look like a timeout")
	}
}

func TestClient_SynthesizeMissingAudioURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer server.Close()

	client := tts.NewClient(tts.Options{BaseURL: server.URL, Path: "/tts"})

	if _, err := client.Synthesize(context.Background(), "hello", "hi"); err == nil {
		t.Error("expected error when audio_url is missing")
	}
}

func TestClient_SynthesizeTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := tts.NewClient(tts.Options{BaseURL: server.URL, Path: "/tts", Timeout: 50 * time.Millisecond})

	_, err := client.Synthesize(context.Background(), "hello", "hi")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Errorf("error: got %v, want ErrTimeout", err)
	}
}
