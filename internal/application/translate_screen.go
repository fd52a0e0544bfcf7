package application

import (
	"context"
	"errors"
	"fmt"

	"voxlate/internal/domain"
)

type PickerID string

const (
	PickerSource PickerID = "source"
	PickerTarget PickerID = "target"
)

type TranslateOptions struct {
	Catalog domain.Catalog
	From    string
	To      string
	// AutoPlay plays the synthesized translation once it is available.
	AutoPlay bool
}

type TranslateResult struct {
	Text  string         `json:"text"`
	Audio domain.Locator `json:"audio,omitempty"`
}

type TranslateState struct {
	Source        string                          `json:"source"`
	Output        string                          `json:"output"`
	From          PickerState                     `json:"from"`
	To            PickerState                     `json:"to"`
	Audio         domain.Locator                  `json:"audio,omitempty"`
	Clip          domain.Locator                  `json:"clip,omitempty"`
	Recording     bool                            `json:"recording"`
	Translation   domain.Request[TranslateResult] `json:"translation"`
	Transcription domain.Request[string]          `json:"transcription"`
	Notice        string                          `json:"notice,omitempty"`
}

// TranslateScreen drives the translate flow: source text, typed or dictated,
// is translated and the translation is synthesized into speech.
type TranslateScreen struct {
	screen

	translator  Translator
	synthesizer Synthesizer
	transcriber Transcriber
	recorder    Recorder
	player      Player
	permissions PermissionGate
	autoPlay    bool

	source        string
	output        string
	from          *Picker
	to            *Picker
	audio         domain.Locator
	clip          domain.Locator
	translation   domain.Request[TranslateResult]
	transcription domain.Request[string]
}

func NewTranslateScreen(ctx context.Context, svc Services, opts TranslateOptions) (*TranslateScreen, error) {
	svc = svc.withDefaults()

	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = domain.DefaultCatalog()
	}

	from, err := NewPicker(catalog, opts.From)
	if err != nil {
		return nil, fmt.Errorf("source language: %w", err)
	}
	to, err := NewPicker(catalog, opts.To)
	if err != nil {
		return nil, fmt.Errorf("target language: %w", err)
	}

	s := &TranslateScreen{
		translator:    svc.Translator,
		synthesizer:   svc.Synthesizer,
		transcriber:   svc.Transcriber,
		recorder:      svc.Recorder,
		player:        svc.Player,
		permissions:   svc.Permissions,
		autoPlay:      opts.AutoPlay,
		from:          from,
		to:            to,
		translation:   domain.Request[TranslateResult]{Status: domain.StatusIdle},
		transcription: domain.Request[string]{Status: domain.StatusIdle},
	}
	s.init(ctx, svc.Notifier, svc.Logger.With("screen", "translate"))

	return s, nil
}

func (s *TranslateScreen) SetSource(text string) {
	s.mu.Lock()
	s.source = text
	s.mu.Unlock()
}

// ClearSource empties the source text and forgets the synthesized audio, so
// a later Play reports that no audio is available.
func (s *TranslateScreen) ClearSource() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = ""
	s.audio = ""
	s.invalidate()
	if s.translation.Loading() {
		s.translation.Reset()
	}
	if s.transcription.Loading() {
		s.transcription.Reset()
	}
}

func (s *TranslateScreen) SetOutput(text string) {
	s.mu.Lock()
	s.output = text
	s.mu.Unlock()
}

func (s *TranslateScreen) ClearOutput() {
	s.SetOutput("")
}

func (s *TranslateScreen) picker(id PickerID) (*Picker, error) {
	switch id {
	case PickerSource:
		return s.from, nil
	case PickerTarget:
		return s.to, nil
	default:
		return nil, fmt.Errorf("unknown picker %q", id)
	}
}

func (s *TranslateScreen) OpenPicker(id PickerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.picker(id)
	if err != nil {
		return err
	}
	p.Open()
	return nil
}

func (s *TranslateScreen) ClosePicker(id PickerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.picker(id)
	if err != nil {
		return err
	}
	p.Close()
	return nil
}

// SelectLanguage updates only the named picker's selection and closes only
// that picker.
func (s *TranslateScreen) SelectLanguage(id PickerID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.picker(id)
	if err != nil {
		return err
	}
	return p.Select(code)
}

// SwapLanguages exchanges source and target selections.
func (s *TranslateScreen) SwapLanguages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.from.selected, s.to.selected = s.to.selected, s.from.selected
}

func (s *TranslateScreen) State() TranslateState {
	s.mu.Lock()
	defer s.mu.Unlock()

	recording := false
	if s.recorder != nil {
		recording = s.recorder.Recording()
	}

	return TranslateState{
		Source:        s.source,
		Output:        s.output,
		From:          s.from.State(),
		To:            s.to.State(),
		Audio:         s.audio,
		Clip:          s.clip,
		Recording:     recording,
		Translation:   s.translation,
		Transcription: s.transcription,
		Notice:        s.notice,
	}
}

// Translate runs translate then synthesize. A single request state spans both
// stages. A failed or empty translation writes a placeholder and skips
// synthesis; a failed synthesis leaves the screen without audio.
func (s *TranslateScreen) Translate(ctx context.Context) error {
	ctx, gen, done := s.begin(ctx, failLoading(&s.translation))
	defer done()

	var text, from, to string
	if !s.commit(ctx, gen, func() {
		text = s.source
		from = s.from.Selected().Code
		to = s.to.Selected().Code
		s.translation.Begin()
	}) {
		return s.abandoned(ctx, gen)
	}

	s.logger.Info("translating", "from", from, "to", to, "chars", len(text))

	translation, err := s.translator.Translate(ctx, text, from, to)
	if err == nil && translation == "" {
		err = domain.ErrEmptyResult
	}
	if err != nil {
		s.logger.Error("translating", "error", err)
		placeholder := domain.NoticeTranslationError
		if errors.Is(err, domain.ErrEmptyResult) {
			placeholder = domain.NoticeTranslationFailed
		}
		if !s.commit(ctx, gen, func() {
			s.output = placeholder
			s.translation.Fail(err.Error())
		}) {
			return s.abandoned(ctx, gen)
		}
		return fmt.Errorf("translating: %w", err)
	}

	if !s.commit(ctx, gen, func() { s.output = translation }) {
		return s.abandoned(ctx, gen)
	}

	audio := s.synthesize(ctx, translation, to)

	if !s.commit(ctx, gen, func() {
		s.audio = audio
		s.translation.Succeed(TranslateResult{Text: translation, Audio: audio})
	}) {
		return s.abandoned(ctx, gen)
	}

	if s.autoPlay && !audio.IsZero() {
		if err := s.player.Play(ctx, audio); err != nil {
			s.logger.Error("playing audio", "error", err, "audio", audio)
		}
	}

	return nil
}

func (s *TranslateScreen) synthesize(ctx context.Context, text, language string) domain.Locator {
	if s.synthesizer == nil {
		return ""
	}

	audio, err := s.synthesizer.Synthesize(ctx, text, language)
	switch {
	case errors.Is(err, domain.ErrTimeout):
		s.logger.Warn("speech synthesis timed out", "language", language)
		return ""
	case err != nil:
		s.logger.Error("synthesizing speech", "error", err, "language", language)
		return ""
	}

	s.logger.Info("speech synthesized", "audio", audio)
	return audio
}

// Play makes one playback attempt of the current translation audio.
func (s *TranslateScreen) Play(ctx context.Context) error {
	s.mu.Lock()
	audio := s.audio
	s.mu.Unlock()

	if audio.IsZero() {
		s.notify(ctx, domain.NoticeNoAudio)
		return domain.ErrNoAudio
	}

	if err := s.player.Play(ctx, audio); err != nil {
		s.logger.Error("playing audio", "error", err, "audio", audio)
		return fmt.Errorf("playing audio: %w", err)
	}
	return nil
}

// StartRecording asks for the microphone and starts capturing. A denied
// permission shows a notice and leaves the recorder idle.
func (s *TranslateScreen) StartRecording(ctx context.Context) error {
	if s.recorder == nil {
		return fmt.Errorf("starting recording: no recorder configured")
	}

	granted, err := s.permissions.Request(ctx, domain.PermissionMicrophone)
	if err != nil {
		s.logger.Error("requesting microphone permission", "error", err)
		return fmt.Errorf("requesting microphone permission: %w", err)
	}
	if !granted {
		s.notify(ctx, domain.NoticeMicrophoneRequired)
		return domain.ErrPermissionDenied
	}

	if err := s.recorder.Start(s.ctx); err != nil {
		s.logger.Error("starting recording", "error", err)
		return fmt.Errorf("starting recording: %w", err)
	}

	s.logger.Info("recording started")
	return nil
}

// StopRecording finalizes the clip and transcribes it into the source text.
func (s *TranslateScreen) StopRecording(ctx context.Context) error {
	if s.recorder == nil {
		return fmt.Errorf("stopping recording: %w", domain.ErrNotRecording)
	}

	clip, err := s.recorder.Stop(ctx)
	if err != nil {
		s.logger.Error("stopping recording", "error", err)
		return fmt.Errorf("stopping recording: %w", err)
	}

	s.logger.Info("recording stopped", "clip", clip)

	return s.TranscribeClip(ctx, clip)
}

// ToggleRecording starts a recording when idle and stops it otherwise.
func (s *TranslateScreen) ToggleRecording(ctx context.Context) error {
	if s.recorder != nil && s.recorder.Recording() {
		return s.StopRecording(ctx)
	}
	return s.StartRecording(ctx)
}

// TranscribeClip replaces the source text with the best transcription of
// clip. On failure the source text is left as it was.
func (s *TranslateScreen) TranscribeClip(ctx context.Context, clip domain.Locator) error {
	ctx, gen, done := s.begin(ctx, failLoading(&s.transcription))
	defer done()

	var hint domain.Language
	if !s.commit(ctx, gen, func() {
		s.clip = clip
		hint = s.from.Selected()
		s.transcription.Begin()
	}) {
		return s.abandoned(ctx, gen)
	}

	candidates, err := s.transcriber.Transcribe(ctx, clip, hint)
	if err == nil && len(candidates) == 0 {
		err = domain.ErrEmptyResult
	}
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			s.logger.Warn("transcription timed out", "clip", clip)
		} else {
			s.logger.Error("transcribing", "error", err, "clip", clip)
		}
		if !s.commit(ctx, gen, func() { s.transcription.Fail(err.Error()) }) {
			return s.abandoned(ctx, gen)
		}
		return fmt.Errorf("transcribing: %w", err)
	}

	text := candidates[0]
	if !s.commit(ctx, gen, func() {
		s.source = text
		s.transcription.Succeed(text)
	}) {
		return s.abandoned(ctx, gen)
	}

	s.logger.Info("transcribed", "text", text)
	return nil
}
