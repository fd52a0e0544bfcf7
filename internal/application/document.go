package application

import (
	"context"

	"voxlate/internal/domain"
)

type TextExtractor interface {
	Extract(ctx context.Context, file domain.Locator, kind domain.DocumentKind) (string, error)
}

type Exporter interface {
	Export(ctx context.Context, text string) (domain.Locator, error)
}
