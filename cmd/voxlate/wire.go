package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"voxlate/config"
	"voxlate/internal/application"
	"voxlate/internal/infra/audio"
	"voxlate/internal/infra/ocr"
	"voxlate/internal/infra/pdf"
	"voxlate/internal/infra/storage"
	"voxlate/internal/infra/stt"
	"voxlate/internal/infra/translator"
	"voxlate/internal/infra/tts"
)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	in     io.Reader
}

// services wires the capability clients. Headless mode skips local playback
// and gives every export a unique file name.
func (a *app) services(ctx context.Context, headless bool) (application.Services, error) {
	cfg := a.cfg

	speechTimeout, err := cfg.SpeechTimeout()
	if err != nil {
		return application.Services{}, err
	}

	transcriber, err := a.transcriber()
	if err != nil {
		return application.Services{}, err
	}

	exporter, err := a.exporter(ctx, headless)
	if err != nil {
		return application.Services{}, err
	}

	synthesizer := tts.NewClient(tts.Options{
		BaseURL:    cfg.Services.Speech.BaseURL,
		Path:       cfg.Services.Speech.Path,
		SpeakerWAV: cfg.Services.Speech.SpeakerWAV,
		Timeout:    speechTimeout,
	})

	permissions := application.StaticPermissions{
		Microphone:   cfg.Permissions.MicrophoneAllowed(),
		MediaLibrary: cfg.Permissions.MediaLibraryAllowed(),
	}

	svc := application.Services{
		Translator:  translator.NewClient(cfg.Services.Translate.BaseURL, cfg.Services.Translate.Path),
		Synthesizer: synthesizer,
		Transcriber: transcriber,
		Extractor:   ocr.NewClientWithURL(cfg.Services.OCR.APIKey, cfg.Services.OCR.URL),
		Exporter:    exporter,
		Permissions: permissions,
		Notifier:    application.NewLogNotifier(a.logger),
		Logger:      a.logger,
	}

	if headless {
		svc.Player = &application.NoopPlayer{}
	} else {
		svc.Player = audio.NewPlayer(audio.NewSpeaker(), a.logger)
		svc.Recorder = audio.NewRecorder(a.device(), cfg.Audio.RecordDir, a.logger)
	}

	return svc, nil
}

func (a *app) transcriber() (application.Transcriber, error) {
	cfg := a.cfg.Services.Transcribe

	timeout, err := a.cfg.TranscribeTimeout()
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "openai":
		return stt.NewOpenAIClientWithURL(cfg.APIKey, cfg.Model, cfg.BaseURL, timeout), nil
	default:
		return stt.NewClient(stt.Options{
			BaseURL:  cfg.BaseURL,
			Path:     cfg.Path,
			Language: cfg.Language,
			Timeout:  timeout,
		}), nil
	}
}

func (a *app) exporter(ctx context.Context, unique bool) (application.Exporter, error) {
	cfg := a.cfg.Export

	var store pdf.Store
	if cfg.Storage.Enabled {
		bucket, err := storage.NewBucket(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Secure:    cfg.Storage.Secure,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting export storage: %w", err)
		}
		store = bucket
	}

	return pdf.NewExporter(
		pdf.NewRenderer(cfg.FontPath),
		pdf.Options{Dir: cfg.Dir, FileName: cfg.FileName, Unique: unique},
		store,
		a.logger,
	), nil
}

func (a *app) device() audio.Device {
	switch a.cfg.Audio.Device {
	case "dir":
		return audio.NewDirDevice(a.cfg.Audio.ClipDir)
	case "microphone":
		return audio.NewMicrophone(a.cfg.Audio.SampleRate, a.logger)
	default:
		a.logger.Warn("unknown audio device, using microphone", "device", a.cfg.Audio.Device)
		return audio.NewMicrophone(a.cfg.Audio.SampleRate, a.logger)
	}
}
