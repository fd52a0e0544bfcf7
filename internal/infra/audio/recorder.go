package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"voxlate/internal/domain"
)

type recorderState int

const (
	stateIdle recorderState = iota
	stateRecording
)

// Recorder is the idle/recording state machine over a capture Device.
// Finished clips are written to dir as <uuid><ext>.
type Recorder struct {
	device Device
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	state recorderState
}

func NewRecorder(device Device, dir string, logger *slog.Logger) *Recorder {
	return &Recorder{
		device: device,
		dir:    dir,
		logger: logger.With("device", device.Name()),
	}
}

func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateRecording {
		return domain.ErrAlreadyRecording
	}

	if err := r.device.Start(ctx); err != nil {
		return fmt.Errorf("starting %s: %w", r.device.Name(), err)
	}

	r.state = stateRecording
	r.logger.Debug("recording")
	return nil
}

func (r *Recorder) Stop(_ context.Context) (domain.Locator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateRecording {
		return "", domain.ErrNotRecording
	}
	r.state = stateIdle

	clip, err := r.device.Stop()
	if err != nil {
		return "", fmt.Errorf("stopping %s: %w", r.device.Name(), err)
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("creating record dir: %w", err)
	}

	ext := clip.Ext
	if ext == "" {
		ext = ".wav"
	}
	path := filepath.Join(r.dir, uuid.NewString()+ext)

	if err := os.WriteFile(path, clip.Data, 0644); err != nil {
		return "", fmt.Errorf("writing clip: %w", err)
	}

	r.logger.Debug("clip saved", "path", path, "bytes", len(clip.Data))
	return domain.Locator(path), nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateRecording
}
