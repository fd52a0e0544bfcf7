package application

import (
	"context"
	"errors"
	"fmt"

	"voxlate/internal/domain"
)

type DocumentOptions struct {
	Catalog domain.Catalog
	// From is the language extracted text is assumed to be in.
	From string
	To   string
}

type DocumentState struct {
	File        domain.Locator                 `json:"file,omitempty"`
	Extracted   string                         `json:"extracted"`
	Translated  string                         `json:"translated"`
	To          PickerState                    `json:"to"`
	Extraction  domain.Request[string]         `json:"extraction"`
	Translation domain.Request[string]         `json:"translation"`
	Export      domain.Request[domain.Locator] `json:"export"`
	Notice      string                         `json:"notice,omitempty"`
}

// DocumentScreen extracts text from an image or a document, translates it and
// exports the translation as a PDF.
type DocumentScreen struct {
	screen

	extractor   TextExtractor
	translator  Translator
	exporter    Exporter
	permissions PermissionGate

	from        domain.Language
	to          *Picker
	file        domain.Locator
	extracted   string
	translated  string
	extraction  domain.Request[string]
	translation domain.Request[string]
	export      domain.Request[domain.Locator]
}

func NewDocumentScreen(ctx context.Context, svc Services, opts DocumentOptions) (*DocumentScreen, error) {
	svc = svc.withDefaults()

	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = domain.DefaultCatalog()
	}

	from, err := catalog.Must(opts.From)
	if err != nil {
		return nil, fmt.Errorf("document language: %w", err)
	}
	to, err := NewPicker(catalog, opts.To)
	if err != nil {
		return nil, fmt.Errorf("target language: %w", err)
	}

	s := &DocumentScreen{
		extractor:   svc.Extractor,
		translator:  svc.Translator,
		exporter:    svc.Exporter,
		permissions: svc.Permissions,
		from:        from,
		to:          to,
		extraction:  domain.Request[string]{Status: domain.StatusIdle},
		translation: domain.Request[string]{Status: domain.StatusIdle},
		export:      domain.Request[domain.Locator]{Status: domain.StatusIdle},
	}
	s.init(ctx, svc.Notifier, svc.Logger.With("screen", "document"))

	return s, nil
}

func (s *DocumentScreen) OpenPicker() {
	s.mu.Lock()
	s.to.Open()
	s.mu.Unlock()
}

func (s *DocumentScreen) ClosePicker() {
	s.mu.Lock()
	s.to.Close()
	s.mu.Unlock()
}

func (s *DocumentScreen) SelectLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.to.Select(code)
}

// SetTranslated replaces the translated text, e.g. after manual edits.
func (s *DocumentScreen) SetTranslated(text string) {
	s.mu.Lock()
	s.translated = text
	s.mu.Unlock()
}

func (s *DocumentScreen) State() DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return DocumentState{
		File:        s.file,
		Extracted:   s.extracted,
		Translated:  s.translated,
		To:          s.to.State(),
		Extraction:  s.extraction,
		Translation: s.translation,
		Export:      s.export,
		Notice:      s.notice,
	}
}

// ExtractImage reads text from a picked image. Access to the media library
// must be granted first.
func (s *DocumentScreen) ExtractImage(ctx context.Context, file domain.Locator) error {
	granted, err := s.permissions.Request(ctx, domain.PermissionMediaLibrary)
	if err != nil {
		return fmt.Errorf("requesting media library permission: %w", err)
	}
	if !granted {
		s.notify(ctx, domain.NoticeMediaLibraryRequired)
		return domain.ErrPermissionDenied
	}

	return s.extract(ctx, file, domain.DocumentKindImage)
}

func (s *DocumentScreen) ExtractDocument(ctx context.Context, file domain.Locator) error {
	return s.extract(ctx, file, domain.DocumentKindDocument)
}

// Extract dispatches on kind.
func (s *DocumentScreen) Extract(ctx context.Context, file domain.Locator, kind domain.DocumentKind) error {
	if kind == domain.DocumentKindImage {
		return s.ExtractImage(ctx, file)
	}
	return s.ExtractDocument(ctx, file)
}

// extract runs OCR and forwards any text found straight to translation.
func (s *DocumentScreen) extract(ctx context.Context, file domain.Locator, kind domain.DocumentKind) error {
	ctx, gen, done := s.begin(ctx, func(reason string) {
		failLoading(&s.extraction)(reason)
		failLoading(&s.translation)(reason)
	})
	defer done()

	if !s.commit(ctx, gen, func() {
		s.file = file
		s.extraction.Begin()
	}) {
		return s.abandoned(ctx, gen)
	}

	s.logger.Info("extracting text", "file", file, "kind", kind)

	text, err := s.extractor.Extract(ctx, file, kind)
	if err != nil {
		notice := domain.NoticeExtractError
		if errors.Is(err, domain.ErrNoText) {
			notice = noTextNotice(kind)
		} else {
			s.logger.Error("extracting text", "error", err, "file", file)
		}
		if !s.commit(ctx, gen, func() {
			s.extracted = ""
			s.translated = ""
			s.extraction.Fail(err.Error())
		}) {
			return s.abandoned(ctx, gen)
		}
		s.notify(ctx, notice)
		return fmt.Errorf("extracting text: %w", err)
	}

	var to string
	if !s.commit(ctx, gen, func() {
		s.extracted = text
		s.extraction.Succeed(text)
		s.translation.Begin()
		to = s.to.Selected().Code
	}) {
		return s.abandoned(ctx, gen)
	}

	translated, err := s.translator.Translate(ctx, text, s.from.Code, to)
	if err == nil && translated == "" {
		err = domain.ErrEmptyResult
	}
	if err != nil {
		s.logger.Error("translating extracted text", "error", err)
		if !s.commit(ctx, gen, func() { s.translation.Fail(err.Error()) }) {
			return s.abandoned(ctx, gen)
		}
		s.notify(ctx, domain.NoticeTranslateError)
		return fmt.Errorf("translating: %w", err)
	}

	if !s.commit(ctx, gen, func() {
		s.translated = translated
		s.translation.Succeed(translated)
	}) {
		return s.abandoned(ctx, gen)
	}

	return nil
}

func noTextNotice(kind domain.DocumentKind) string {
	if kind == domain.DocumentKindImage {
		return domain.NoticeNoTextInImage
	}
	return domain.NoticeNoTextInDocument
}

// ExportPDF renders the translated text into a PDF artifact.
func (s *DocumentScreen) ExportPDF(ctx context.Context) error {
	ctx, gen, done := s.begin(ctx, failLoading(&s.export))
	defer done()

	var text string
	if !s.commit(ctx, gen, func() {
		text = s.translated
		s.export.Begin()
	}) {
		return s.abandoned(ctx, gen)
	}

	artifact, err := s.exporter.Export(ctx, text)
	if err != nil {
		s.logger.Error("exporting pdf", "error", err)
		if !s.commit(ctx, gen, func() { s.export.Fail(err.Error()) }) {
			return s.abandoned(ctx, gen)
		}
		s.notify(ctx, domain.NoticePDFError)
		return fmt.Errorf("exporting pdf: %w", err)
	}

	if !s.commit(ctx, gen, func() { s.export.Succeed(artifact) }) {
		return s.abandoned(ctx, gen)
	}
	s.notify(ctx, domain.NoticePDFCreated)

	s.logger.Info("pdf exported", "artifact", artifact)
	return nil
}
