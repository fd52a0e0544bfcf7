package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"voxlate/internal/domain"
)

// ErrStale is returned when a response arrives after the screen moved on
// (closed, cleared or superseded) and was therefore not applied.
var ErrStale = errors.New("response discarded: screen state changed")

// Services bundles the capability clients and adapters shared by screens.
type Services struct {
	Translator  Translator
	Synthesizer Synthesizer
	Transcriber Transcriber
	Extractor   TextExtractor
	Exporter    Exporter
	Recorder    Recorder
	Player      Player
	Permissions PermissionGate
	Notifier    Notifier
	Logger      *slog.Logger
}

func (s Services) withDefaults() Services {
	if s.Notifier == nil {
		s.Notifier = &NoopNotifier{}
	}
	if s.Player == nil {
		s.Player = &NoopPlayer{}
	}
	if s.Transcriber == nil {
		s.Transcriber = &NoopTranscriber{}
	}
	if s.Permissions == nil {
		s.Permissions = StaticPermissions{Microphone: true, MediaLibrary: true}
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}

// screen carries what every orchestrator shares: a lifetime context, the
// operation lock that keeps calls strictly sequential, and the generation
// counter used to drop stale responses.
type screen struct {
	ctx    context.Context
	cancel context.CancelFunc

	op sync.Mutex

	mu     sync.Mutex
	gen    uint64
	notice string

	notifier Notifier
	logger   *slog.Logger
}

func (s *screen) init(parent context.Context, notifier Notifier, logger *slog.Logger) {
	s.ctx, s.cancel = context.WithCancel(parent)
	s.notifier = notifier
	s.logger = logger
}

// Close cancels every in-flight call. Responses arriving afterwards are dropped.
func (s *screen) Close() {
	s.cancel()
}

// begin serialises an operation and returns a context cancelled by either the
// caller or the screen, plus the generation the operation commits against.
// When the caller's context ends while the operation is still current and
// the screen is open, done hands the context error to settle so the request
// state leaves in progress. settle runs under the state lock.
func (s *screen) begin(ctx context.Context, settle func(reason string)) (context.Context, uint64, func()) {
	s.op.Lock()

	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	return opCtx, gen, func() {
		stop()

		s.mu.Lock()
		if opCtx.Err() != nil && s.ctx.Err() == nil && gen == s.gen {
			settle(opCtx.Err().Error())
		}
		s.mu.Unlock()

		cancel()
		s.op.Unlock()
	}
}

// commit applies fn under the state lock if the operation is still current.
func (s *screen) commit(ctx context.Context, gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil || s.ctx.Err() != nil || gen != s.gen {
		s.logger.Debug("discarding stale response", "generation", gen, "current", s.gen)
		return false
	}
	fn()
	return true
}

// failLoading fails r with the given reason if it is still in progress.
func failLoading[T any](r *domain.Request[T]) func(reason string) {
	return func(reason string) {
		if r.Loading() {
			r.Fail(reason)
		}
	}
}

// abandoned is the error for a commit that was refused: the caller's own
// context error when only the caller gave up, ErrStale otherwise.
func (s *screen) abandoned(ctx context.Context, gen uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil && s.ctx.Err() == nil && gen == s.gen {
		return ctx.Err()
	}
	return ErrStale
}

// invalidate makes every in-flight operation stale. Callers hold s.mu.
func (s *screen) invalidate() {
	s.gen++
}

func (s *screen) notify(ctx context.Context, message string) {
	s.mu.Lock()
	s.notice = message
	s.mu.Unlock()

	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Error("notifying", "error", err)
	}
}

func (s *screen) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *screen) DismissNotice() {
	s.mu.Lock()
	s.notice = ""
	s.mu.Unlock()
}
