package application

import (
	"context"

	"voxlate/internal/domain"
)

// Recorder captures one clip at a time. Start while recording and Stop while
// idle are rejected.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (domain.Locator, error)
	Recording() bool
}

type Player interface {
	Play(ctx context.Context, clip domain.Locator) error
}

// NoopPlayer drops playback requests, for front-ends that play audio themselves.
type NoopPlayer struct{}

func (n *NoopPlayer) Play(_ context.Context, _ domain.Locator) error {
	return nil
}
