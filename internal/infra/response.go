package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"voxlate/internal/domain"
)

const maxErrorBody = 64 * 1024

// CheckStatus turns a non-2xx response into a ServiceError, lifting a
// "message" or "error" field out of a JSON body when there is one.
func CheckStatus(capability domain.Capability, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &domain.ServiceError{
		Capability: capability,
		Status:     strconv.Itoa(resp.StatusCode),
		Message:    errorMessage(body),
	}
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(body)
	}
	if payload.Message != "" {
		return payload.Message
	}
	if s, ok := payload.Error.(string); ok && s != "" {
		return s
	}
	return string(body)
}

// WithWaitBound bounds ctx by d; a zero bound leaves ctx unchanged.
func WithWaitBound(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// TimedOut reports whether err came from the wait bound on waitCtx rather
// than from the caller giving up.
func TimedOut(parent, waitCtx context.Context, err error) bool {
	if err == nil || parent.Err() != nil {
		return false
	}
	if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// WrapTimeout maps a wait-bound expiry onto domain.ErrTimeout.
func WrapTimeout(parent, waitCtx context.Context, err error, op string) error {
	if TimedOut(parent, waitCtx, err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
