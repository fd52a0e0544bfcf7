package application_test

import (
	"context"
	"errors"
	"testing"

	"voxlate/internal/application"
	"voxlate/internal/domain"
)

func newDocumentScreen(t *testing.T, svc application.Services) *application.DocumentScreen {
	t.Helper()

	svc.Logger = discardLogger()
	s, err := application.NewDocumentScreen(context.Background(), svc, application.DocumentOptions{
		From: "en",
		To:   "ta",
	})
	if err != nil {
		t.Fatalf("NewDocumentScreen error: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestDocumentScreen_ExtractAndTranslate(t *testing.T) {
	translator := &mockTranslator{result: "வணக்கம்"}
	s := newDocumentScreen(t, application.Services{
		Extractor:  &mockExtractor{text: "Hello"},
		Translator: translator,
	})

	if err := s.ExtractImage(context.Background(), "/tmp/photo.jpg"); err != nil {
		t.Fatalf("ExtractImage error: %v", err)
	}

	state := s.State()
	if state.Extracted != "Hello" {
		t.Errorf("extracted: got %q", state.Extracted)
	}
	if state.Translated != "வணக்கம்" {
		t.Errorf("translated: got %q", state.Translated)
	}
	if calls := translator.Calls(); len(calls) != 1 || calls[0] != "en>ta:Hello" {
		t.Errorf("translator calls: got %v", calls)
	}
}

func TestDocumentScreen_NoTextFound(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.DocumentKind
		notice string
	}{
		{name: "image", kind: domain.DocumentKindImage, notice: domain.NoticeNoTextInImage},
		{name: "document", kind: domain.DocumentKindDocument, notice: domain.NoticeNoTextInDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator := &mockTranslator{result: "unused"}
			notifier := &recordingNotifier{}
			s := newDocumentScreen(t, application.Services{
				Extractor:  &mockExtractor{err: domain.ErrNoText},
				Translator: translator,
				Notifier:   notifier,
			})

			err := s.Extract(context.Background(), "/tmp/file", tt.kind)
			if !errors.Is(err, domain.ErrNoText) {
				t.Errorf("error: got %v, want ErrNoText", err)
			}

			if s.State().Extracted != "" {
				t.Error("extracted text should stay empty")
			}
			if notifier.Last() != tt.notice {
				t.Errorf("notice: got %q, want %q", notifier.Last(), tt.notice)
			}
			if len(translator.Calls()) != 0 {
				t.Error("translation must not be requested")
			}
		})
	}
}

func TestDocumentScreen_MediaLibraryDenied(t *testing.T) {
	extractor := &mockExtractor{text: "Hello"}
	s := newDocumentScreen(t, application.Services{
		Extractor:   extractor,
		Translator:  &mockTranslator{},
		Permissions: application.StaticPermissions{MediaLibrary: false},
	})

	err := s.ExtractImage(context.Background(), "/tmp/photo.jpg")
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("error: got %v, want ErrPermissionDenied", err)
	}
	if len(extractor.kinds) != 0 {
		t.Error("extractor should not be called")
	}
	if s.State().Notice != domain.NoticeMediaLibraryRequired {
		t.Errorf("notice: got %q", s.State().Notice)
	}
}

func TestDocumentScreen_TranslationError(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newDocumentScreen(t, application.Services{
		Extractor:  &mockExtractor{text: "Hello"},
		Translator: &mockTranslator{err: errors.New("boom")},
		Notifier:   notifier,
	})

	if err := s.ExtractDocument(context.Background(), "/tmp/doc.pdf"); err == nil {
		t.Error("expected error")
	}

	state := s.State()
	if state.Extracted != "Hello" {
		t.Errorf("extracted: got %q, want Hello", state.Extracted)
	}
	if state.Translation.Status != domain.StatusFailed {
		t.Errorf("translation status: got %s", state.Translation.Status)
	}
	if notifier.Last() != domain.NoticeTranslateError {
		t.Errorf("notice: got %q", notifier.Last())
	}
}

func TestDocumentScreen_ExportPDF(t *testing.T) {
	exporter := &mockExporter{artifact: "/exports/TranslatedDocument.pdf"}
	notifier := &recordingNotifier{}
	s := newDocumentScreen(t, application.Services{
		Extractor:  &mockExtractor{},
		Translator: &mockTranslator{},
		Exporter:   exporter,
		Notifier:   notifier,
	})
	s.SetTranslated("translated body")

	if err := s.ExportPDF(context.Background()); err != nil {
		t.Fatalf("ExportPDF error: %v", err)
	}

	if len(exporter.texts) != 1 || exporter.texts[0] != "translated body" {
		t.Errorf("exported texts: got %v", exporter.texts)
	}
	if s.State().Export.Payload != exporter.artifact {
		t.Errorf("artifact: got %s", s.State().Export.Payload)
	}
	if notifier.Last() != domain.NoticePDFCreated {
		t.Errorf("notice: got %q", notifier.Last())
	}
}

func TestDocumentScreen_ExportFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newDocumentScreen(t, application.Services{
		Extractor:  &mockExtractor{},
		Translator: &mockTranslator{},
		Exporter:   &mockExporter{err: errors.New("disk full")},
		Notifier:   notifier,
	})

	if err := s.ExportPDF(context.Background()); err == nil {
		t.Error("expected error")
	}
	if notifier.Last() != domain.NoticePDFError {
		t.Errorf("notice: got %q", notifier.Last())
	}
}

func TestDocumentScreen_FailedExtractClearsPreviousText(t *testing.T) {
	extractor := &mockExtractor{text: "Hello"}
	s := newDocumentScreen(t, application.Services{
		Extractor:  extractor,
		Translator: &mockTranslator{result: "வணக்கம்"},
	})

	if err := s.ExtractImage(context.Background(), "/tmp/first.jpg"); err != nil {
		t.Fatalf("ExtractImage error: %v", err)
	}
	if s.State().Translated == "" {
		t.Fatal("first extraction should be translated")
	}

	extractor.text = ""
	extractor.err = domain.ErrNoText
	if err := s.ExtractImage(context.Background(), "/tmp/blank.jpg"); !errors.Is(err, domain.ErrNoText) {
		t.Errorf("error: got %v, want ErrNoText", err)
	}

	state := s.State()
	if state.Extracted != "" {
		t.Errorf("extracted: got %q, want empty", state.Extracted)
	}
	if state.Translated != "" {
		t.Errorf("translated: got %q, want empty", state.Translated)
	}
	if state.Extraction.Status != domain.StatusFailed {
		t.Errorf("status: got %s, want failed", state.Extraction.Status)
	}
}
