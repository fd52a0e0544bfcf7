package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"voxlate/internal/domain"
)

const contentType = "application/pdf"

// Store keeps a copy of an exported file and returns where it can be
// downloaded from.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type Options struct {
	Dir      string
	FileName string
	// Unique prefixes every file name with a random id so concurrent
	// exports do not overwrite each other.
	Unique bool
}

type Exporter struct {
	renderer *Renderer
	dir      string
	fileName string
	unique   bool
	store    Store
	logger   *slog.Logger
}

func NewExporter(renderer *Renderer, opts Options, store Store, logger *slog.Logger) *Exporter {
	fileName := opts.FileName
	if fileName == "" {
		fileName = "TranslatedDocument.pdf"
	}
	return &Exporter{
		renderer: renderer,
		dir:      opts.Dir,
		fileName: fileName,
		unique:   opts.Unique,
		store:    store,
		logger:   logger,
	}
}

// Export renders text, writes the PDF to the export directory and, with a
// store configured, uploads it. The returned locator is the public URL when
// uploaded and the local path otherwise.
func (e *Exporter) Export(ctx context.Context, text string) (domain.Locator, error) {
	data, err := e.renderer.Render(text)
	if err != nil {
		return "", err
	}

	name := e.fileName
	if e.unique {
		name = uuid.NewString() + "-" + name
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}

	e.logger.Info("pdf written", "path", path, "bytes", len(data))

	if e.store == nil {
		return domain.Locator(path), nil
	}

	url, err := e.store.Put(ctx, name, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", fmt.Errorf("uploading pdf: %w", err)
	}

	e.logger.Info("pdf uploaded", "url", url)
	return domain.Locator(url), nil
}

