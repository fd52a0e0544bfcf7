//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Speaker plays through the default output device.
type Speaker struct{}

func NewSpeaker() *Speaker {
	return &Speaker{}
}

func (s *Speaker) Play(ctx context.Context, pcm PCM) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	channels := pcm.Channels
	if channels == 0 {
		channels = 1
	}

	frame := make([]int16, framesPerBuffer*channels)

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(pcm.SampleRate), framesPerBuffer, frame)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	for pos := 0; pos < len(pcm.Samples); pos += len(frame) {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := copy(frame, pcm.Samples[pos:])
		clear(frame[n:])

		if err := stream.Write(); err != nil {
			return fmt.Errorf("writing to stream: %w", err)
		}
	}

	return nil
}
