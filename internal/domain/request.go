package domain

// Status is the lifecycle of a single user-initiated request.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusInProgress Status = "in_progress"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsActive() bool {
	return s == StatusInProgress
}

func (s Status) IsFinished() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Request holds the outcome of one operation. The payload is only meaningful
// when succeeded and the reason only when failed.
type Request[T any] struct {
	Status  Status `json:"status"`
	Payload T      `json:"payload,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func (r *Request[T]) Begin() {
	var zero T
	r.Status = StatusInProgress
	r.Payload = zero
	r.Reason = ""
}

func (r *Request[T]) Succeed(payload T) {
	r.Status = StatusSucceeded
	r.Payload = payload
	r.Reason = ""
}

func (r *Request[T]) Fail(reason string) {
	var zero T
	r.Status = StatusFailed
	r.Payload = zero
	r.Reason = reason
}

func (r *Request[T]) Reset() {
	*r = Request[T]{Status: StatusIdle}
}

func (r Request[T]) Loading() bool {
	return r.Status.IsActive()
}
