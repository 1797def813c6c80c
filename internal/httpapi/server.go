// Package httpapi exposes the validation pipeline over HTTP. It is a thin
// boundary: it enforces input size limits and leaves every judgment to the
// pipeline, which always answers with a structured report.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/joelkehle/deedcheck/internal/pipeline"
)

const (
	// MinTextChars rejects inputs too short to be a deed before the core runs.
	MinTextChars = 20
	MaxTextBytes = 100_000
)

type Server struct {
	pipeline *pipeline.Pipeline
}

func NewServer(p *pipeline.Pipeline) http.Handler {
	s := &Server{pipeline: p}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/validate", s.handleValidate)
	mux.HandleFunc("/v1/validate/file", s.handleValidateFile)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

type validateRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxTextBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "cannot read body")
		return
	}
	var req validateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "body must be JSON with a \"text\" field")
		return
	}
	s.validateText(w, r, req.Text)
}

func (s *Server) handleValidateFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST required")
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "multipart field \"file\" is required")
		return
	}
	defer f.Close()
	blob, err := io.ReadAll(io.LimitReader(f, MaxTextBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "cannot read file")
		return
	}
	s.validateText(w, r, string(blob))
}

func (s *Server) validateText(w http.ResponseWriter, r *http.Request, text string) {
	if len(strings.TrimSpace(text)) < MinTextChars {
		writeError(w, http.StatusBadRequest, "text_too_short", "deed text is too short to validate")
		return
	}
	if len(text) > MaxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "text_too_large", "deed text exceeds the size limit")
		return
	}
	report := s.pipeline.Validate(r.Context(), text)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"ok": false,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
