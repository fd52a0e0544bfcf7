package audio

import "context"

// Clip is one finished capture.
type Clip struct {
	Data []byte
	// Ext is the file extension the data should be stored under, with the
	// leading dot.
	Ext string
}

// Device captures a single clip between Start and Stop.
type Device interface {
	Name() string
	Start(ctx context.Context) error
	Stop() (Clip, error)
}

// Output plays decoded audio.
type Output interface {
	Play(ctx context.Context, pcm PCM) error
}
