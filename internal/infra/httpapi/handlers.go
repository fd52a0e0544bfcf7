package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"voxlate/internal/application"
	"voxlate/internal/domain"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadSize = 20 << 20
)

type translateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type speechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type exportRequest struct {
	Text string `json:"text"`
}

type exportResponse struct {
	URL    string                         `json:"url"`
	Export domain.Request[domain.Locator] `json:"export"`
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]domain.Catalog{
		"translation": s.translationCatalog(),
		"speech":      s.speechCatalog(),
	})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	screen, err := application.NewTranslateScreen(r.Context(), s.services, application.TranslateOptions{
		Catalog: s.translationCatalog(),
		From:    fallback(req.From, s.opts.Source),
		To:      fallback(req.To, s.opts.Target),
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer screen.Close()

	screen.SetSource(req.Text)
	err = screen.Translate(r.Context())

	writeJSON(w, statusFor(err), screen.State())
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	screen, err := application.NewSpeechScreen(r.Context(), s.services, application.SpeechOptions{
		Catalog:  s.speechCatalog(),
		Language: fallback(req.Language, s.opts.Speak),
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer screen.Close()

	screen.SetText(req.Text)
	err = screen.Generate(r.Context())

	writeJSON(w, statusFor(err), screen.State())
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	clip, cleanup, err := s.saveUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	screen, err := application.NewTranslateScreen(r.Context(), s.services, application.TranslateOptions{
		Catalog: s.translationCatalog(),
		From:    fallback(r.FormValue("language"), s.opts.Source),
		To:      s.opts.Target,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer screen.Close()

	err = screen.TranscribeClip(r.Context(), clip)

	writeJSON(w, statusFor(err), screen.State())
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	file, cleanup, err := s.saveUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	kind, ok := domain.ParseDocumentKind(r.FormValue("kind"))
	if !ok {
		kind = domain.DocumentKindImage
		if strings.EqualFold(filepath.Ext(file.Base()), ".pdf") {
			kind = domain.DocumentKindDocument
		}
	}

	screen, err := application.NewDocumentScreen(r.Context(), s.services, application.DocumentOptions{
		Catalog: s.translationCatalog(),
		From:    s.opts.DocumentSource,
		To:      fallback(r.FormValue("to"), s.opts.Target),
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer screen.Close()

	err = screen.Extract(r.Context(), file, kind)

	writeJSON(w, statusFor(err), screen.State())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	screen, err := application.NewDocumentScreen(r.Context(), s.services, application.DocumentOptions{
		Catalog: s.translationCatalog(),
		From:    s.opts.DocumentSource,
		To:      s.opts.Target,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer screen.Close()

	screen.SetTranslated(req.Text)
	if err := screen.ExportPDF(r.Context()); err != nil {
		writeJSON(w, statusFor(err), screen.State())
		return
	}

	export := screen.State().Export
	artifact := export.Payload
	if artifact.IsRemote() {
		writeJSON(w, http.StatusOK, exportResponse{URL: artifact.String(), Export: export})
		return
	}

	data, err := os.ReadFile(artifact.Path())
	if err != nil {
		s.logger.Error("reading exported pdf", "error", err, "path", artifact)
		writeError(w, http.StatusInternalServerError, "reading exported pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Base()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// saveUpload stores the "file" form part under the upload directory with a
// random name that keeps the original extension.
func (s *Server) saveUpload(r *http.Request) (domain.Locator, func(), error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", nil, fmt.Errorf("parsing form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("reading file field: %w", err)
	}
	defer file.Close()

	dir := s.opts.UploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("creating upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(header.Filename)))
	out, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("creating upload: %w", err)
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("writing upload: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("closing upload: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("removing upload", "error", err, "path", path)
		}
	}
	return domain.Locator(path), cleanup, nil
}

func (s *Server) translationCatalog() domain.Catalog {
	if len(s.opts.Translation) == 0 {
		return domain.DefaultCatalog()
	}
	return s.opts.Translation
}

func (s *Server) speechCatalog() domain.Catalog {
	if len(s.opts.Speech) == 0 {
		return domain.DefaultSpeechCatalog()
	}
	return s.opts.Speech
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// statusFor maps an orchestrator error onto the response code. The body
// still carries the full request state.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnknownLanguage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNoText):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, application.ErrStale):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
