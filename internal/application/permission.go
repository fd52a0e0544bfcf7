package application

import (
	"context"

	"voxlate/internal/domain"
)

type PermissionGate interface {
	Request(ctx context.Context, p domain.Permission) (bool, error)
}

// StaticPermissions answers permission requests from fixed settings.
type StaticPermissions struct {
	Microphone   bool
	MediaLibrary bool
}

func (s StaticPermissions) Request(_ context.Context, p domain.Permission) (bool, error) {
	switch p {
	case domain.PermissionMicrophone:
		return s.Microphone, nil
	case domain.PermissionMediaLibrary:
		return s.MediaLibrary, nil
	default:
		return false, nil
	}
}
