//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

// Microphone captures mono 16-bit audio from the default input device.
type Microphone struct {
	sampleRate int
	maxSamples int
	logger     *slog.Logger

	mu      sync.Mutex
	stream  *portaudio.Stream
	frame   []int16
	samples []int16
	done    chan struct{}
	cancel  context.CancelFunc
	readErr error
}

func NewMicrophone(sampleRate int, logger *slog.Logger) *Microphone {
	return &Microphone{
		sampleRate: sampleRate,
		maxSamples: sampleRate * 120,
		logger:     logger,
	}
}

func (m *Microphone) Name() string {
	return "microphone"
}

func (m *Microphone) Start(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	m.frame = make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, m.frame)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting stream: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.stream = stream
	m.samples = make([]int16, 0, m.sampleRate*5)
	m.done = make(chan struct{})
	m.cancel = cancel
	m.readErr = nil
	m.mu.Unlock()

	go m.capture(ctx)

	m.logger.Info("microphone started", "sampleRate", m.sampleRate)
	return nil
}

func (m *Microphone) capture(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := m.stream.Read(); err != nil {
			m.mu.Lock()
			m.readErr = fmt.Errorf("reading from stream: %w", err)
			m.mu.Unlock()
			return
		}

		m.mu.Lock()
		if len(m.samples) < m.maxSamples {
			m.samples = append(m.samples, m.frame...)
		}
		m.mu.Unlock()
	}
}

func (m *Microphone) Stop() (Clip, error) {
	if m.cancel == nil {
		return Clip{}, fmt.Errorf("microphone not started")
	}

	m.cancel()
	<-m.done

	m.stream.Stop()
	m.stream.Close()
	portaudio.Terminate()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancel = nil
	if m.readErr != nil {
		return Clip{}, m.readErr
	}

	m.logger.Info("microphone stopped", "samples", len(m.samples))
	return Clip{Data: EncodeWAV(m.samples, m.sampleRate), Ext: ".wav"}, nil
}
