package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrTimeout          = errors.New("request timed out")
	ErrNoAudio          = errors.New("no audio available")
	ErrNoText           = errors.New("no text found")
	ErrEmptyResult      = errors.New("empty result")
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
	ErrUnknownLanguage  = errors.New("unknown language")
)

type Capability string

const (
	CapabilityTranslate  Capability = "translate"
	CapabilitySynthesize Capability = "synthesize"
	CapabilityTranscribe Capability = "transcribe"
	CapabilityExtract    Capability = "extract"
)

// ServiceError is a failure reported by the remote service itself, either
// through a non-success HTTP status or an embedded status field.
type ServiceError struct {
	Capability Capability
	Status     string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s service error: status %s", e.Capability, e.Status)
	}
	return fmt.Sprintf("%s service error: status %s: %s", e.Capability, e.Status, e.Message)
}

// ServiceMessage extracts the service-provided message from err, if any.
func ServiceMessage(err error) (string, bool) {
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}
