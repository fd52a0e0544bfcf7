package application

import (
	"context"
	"errors"
	"fmt"

	"voxlate/internal/domain"
)

type SpeechOptions struct {
	Catalog  domain.Catalog
	Language string
}

type SpeechState struct {
	Text     string                         `json:"text"`
	Language PickerState                    `json:"language"`
	Audio    domain.Locator                 `json:"audio,omitempty"`
	Speech   domain.Request[domain.Locator] `json:"speech"`
	Notice   string                         `json:"notice,omitempty"`
}

// SpeechScreen turns typed text into speech and plays it right away.
type SpeechScreen struct {
	screen

	synthesizer Synthesizer
	player      Player

	text     string
	language *Picker
	audio    domain.Locator
	speech   domain.Request[domain.Locator]
}

func NewSpeechScreen(ctx context.Context, svc Services, opts SpeechOptions) (*SpeechScreen, error) {
	svc = svc.withDefaults()

	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = domain.DefaultSpeechCatalog()
	}

	language, err := NewPicker(catalog, opts.Language)
	if err != nil {
		return nil, fmt.Errorf("speech language: %w", err)
	}

	s := &SpeechScreen{
		synthesizer: svc.Synthesizer,
		player:      svc.Player,
		language:    language,
		speech:      domain.Request[domain.Locator]{Status: domain.StatusIdle},
	}
	s.init(ctx, svc.Notifier, svc.Logger.With("screen", "speech"))

	return s, nil
}

func (s *SpeechScreen) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *SpeechScreen) OpenPicker() {
	s.mu.Lock()
	s.language.Open()
	s.mu.Unlock()
}

func (s *SpeechScreen) ClosePicker() {
	s.mu.Lock()
	s.language.Close()
	s.mu.Unlock()
}

func (s *SpeechScreen) SelectLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language.Select(code)
}

func (s *SpeechScreen) State() SpeechState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SpeechState{
		Text:     s.text,
		Language: s.language.State(),
		Audio:    s.audio,
		Speech:   s.speech,
		Notice:   s.notice,
	}
}

// Generate synthesizes the text and makes exactly one playback attempt once
// the audio is available. A failure reported by the service is shown with the
// service's own message.
func (s *SpeechScreen) Generate(ctx context.Context) error {
	ctx, gen, done := s.begin(ctx, failLoading(&s.speech))
	defer done()

	var text, language string
	if !s.commit(ctx, gen, func() {
		text = s.text
		language = s.language.Selected().Code
		s.speech.Begin()
	}) {
		return s.abandoned(ctx, gen)
	}

	audio, err := s.synthesizer.Synthesize(ctx, text, language)
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			s.logger.Warn("speech synthesis timed out", "language", language)
		} else {
			s.logger.Error("synthesizing speech", "error", err, "language", language)
		}

		message, ok := domain.ServiceMessage(err)
		if !ok {
			message = domain.NoticeSpeechError + ": " + err.Error()
		}
		if !s.commit(ctx, gen, func() { s.speech.Fail(message) }) {
			return s.abandoned(ctx, gen)
		}
		s.notify(ctx, message)
		return fmt.Errorf("synthesizing speech: %w", err)
	}

	if !s.commit(ctx, gen, func() {
		s.audio = audio
		s.speech.Succeed(audio)
		s.notice = ""
	}) {
		return s.abandoned(ctx, gen)
	}

	if err := s.player.Play(ctx, audio); err != nil {
		s.logger.Error("playing audio", "error", err, "audio", audio)
	}

	return nil
}

// Play replays the last synthesized audio.
func (s *SpeechScreen) Play(ctx context.Context) error {
	s.mu.Lock()
	audio := s.audio
	s.mu.Unlock()

	if audio.IsZero() {
		s.notify(ctx, domain.NoticeNoAudio)
		return domain.ErrNoAudio
	}

	if err := s.player.Play(ctx, audio); err != nil {
		return fmt.Errorf("playing audio: %w", err)
	}
	return nil
}
