package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"voxlate/internal/application"
	"voxlate/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockTranslator struct {
	mu     sync.Mutex
	result string
	err    error
	calls  []string
	block  chan struct{}
}

func (m *mockTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, from+">"+to+":"+text)
	m.mu.Unlock()

	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.result, m.err
}

func (m *mockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type mockSynthesizer struct {
	audio    domain.Locator
	err      error
	calls    int
	language string
}

func (m *mockSynthesizer) Synthesize(_ context.Context, _ string, language string) (domain.Locator, error) {
	m.calls++
	m.language = language
	return m.audio, m.err
}

type mockTranscriber struct {
	candidates []string
	err        error
	hint       domain.Language
	clips      []domain.Locator
}

func (m *mockTranscriber) Transcribe(_ context.Context, clip domain.Locator, hint domain.Language) ([]string, error) {
	m.clips = append(m.clips, clip)
	m.hint = hint
	return m.candidates, m.err
}

type mockRecorder struct {
	recording bool
	clip      domain.Locator
	starts    int
}

func (m *mockRecorder) Start(_ context.Context) error {
	if m.recording {
		return domain.ErrAlreadyRecording
	}
	m.recording = true
	m.starts++
	return nil
}

func (m *mockRecorder) Stop(_ context.Context) (domain.Locator, error) {
	if !m.recording {
		return "", domain.ErrNotRecording
	}
	m.recording = false
	return m.clip, nil
}

func (m *mockRecorder) Recording() bool { return m.recording }

type mockPlayer struct {
	played []domain.Locator
	err    error
}

func (m *mockPlayer) Play(_ context.Context, clip domain.Locator) error {
	m.played = append(m.played, clip)
	return m.err
}

type mockExtractor struct {
	text  string
	err   error
	kinds []domain.DocumentKind
}

func (m *mockExtractor) Extract(_ context.Context, _ domain.Locator, kind domain.DocumentKind) (string, error) {
	m.kinds = append(m.kinds, kind)
	return m.text, m.err
}

type mockExporter struct {
	artifact domain.Locator
	err      error
	texts    []string
}

func (m *mockExporter) Export(_ context.Context, text string) (domain.Locator, error) {
	m.texts = append(m.texts, text)
	return m.artifact, m.err
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *recordingNotifier) Last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

var _ application.Recorder = (*mockRecorder)(nil)
