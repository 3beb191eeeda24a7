package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sakshya-ai/sakshya-web/internal/analysis"
	"github.com/sakshya-ai/sakshya-web/internal/auth"
	"github.com/sakshya-ai/sakshya-web/internal/history"
	"github.com/sakshya-ai/sakshya-web/internal/report"
	"github.com/sakshya-ai/sakshya-web/internal/statement"
)

const maxUploadSize = 10 << 20 // 10 MB

// indexData is the view model for the input page.
type indexData struct {
	Session *auth.Session
	Types   []statement.Type
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", indexData{
		Session: session,
		Types:   statement.Types,
	}); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

// AnalyzeResponse carries the structured report plus the rendered
// confrontation table fragment.
type AnalyzeResponse struct {
	Report *report.Report `json:"report"`
	HTML   string         `json:"html"`
}

// handleAnalyze runs one analysis cycle: validate both slots, call the
// backend, render the report, and best-effort persist history for signed-in
// users. Guest mode runs the full flow minus the save.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s1 := statement.Input{Text: strings.TrimSpace(req.Statement1Text), Type: statement.Type(req.Statement1Type)}
	s2 := statement.Input{Text: strings.TrimSpace(req.Statement2Text), Type: statement.Type(req.Statement2Type)}

	if s1.Text == "" || s2.Text == "" {
		respondError(w, http.StatusBadRequest, "both statement texts are required")
		return
	}
	if !s1.Type.Valid() || !s2.Type.Valid() {
		respondError(w, http.StatusBadRequest, "unknown statement type")
		return
	}

	rep, err := s.analysis.Analyze(r.Context(), s1, s2)
	if err != nil {
		s.logger.Error("analyze failed", "error", err)
		respondError(w, http.StatusBadGateway, analysisErrorMessage(err))
		return
	}

	// History save is attempted only while a session is active, and its
	// outcome never changes the reported result.
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		record := history.NewRecord(session.UID, s1, s2, rep)
		go s.saveHistory(record)
	}

	html, err := s.renderReport(rep)
	if err != nil {
		s.logger.Error("render report", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	respondJSON(w, http.StatusOK, AnalyzeResponse{Report: rep, HTML: html})
}

// saveHistory persists an analysis summary. Failures are logged and
// swallowed: the analysis already succeeded from the user's perspective.
func (s *Server) saveHistory(record *history.Record) {
	if err := s.history.Save(context.Background(), record); err != nil {
		s.logger.Warn("failed to save analysis history", "user_id", record.UserID, "error", err)
	}
}

// UploadDocumentResponse returns the extracted text. Text always replaces
// the slot's current content; Preview is the truncated confirmation shown
// for manual review.
type UploadDocumentResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Preview  string `json:"preview"`
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowedExts := map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		respondError(w, http.StatusBadRequest, "only .pdf, .jpg, .jpeg, and .png files are allowed")
		return
	}

	stype := statement.Type(r.FormValue("statement_type"))
	if !stype.Valid() {
		respondError(w, http.StatusBadRequest, "unknown statement type")
		return
	}

	result, err := s.analysis.UploadDocument(r.Context(), header.Filename, file, stype)
	if err != nil {
		s.logger.Error("document upload failed", "filename", header.Filename, "error", err)
		respondError(w, http.StatusBadGateway, analysisErrorMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, UploadDocumentResponse{
		Filename: result.Filename,
		Text:     result.ContentPreview,
		Preview:  statement.Truncate(result.ContentPreview, 200),
	})
}

// TranscriptResponse returns the slot's full text after the transcript has
// been appended.
type TranscriptResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleSpeechToText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no audio provided")
		return
	}
	defer file.Close()

	stype := statement.Type(r.FormValue("statement_type"))
	if !stype.Valid() {
		respondError(w, http.StatusBadRequest, "unknown statement type")
		return
	}

	filename := header.Filename
	if filename == "" {
		// Live recordings arrive as unnamed blobs.
		filename = "audio.webm"
	}

	transcript, err := s.analysis.SpeechToText(r.Context(), filename, file, stype)
	if err != nil {
		s.logger.Error("transcription failed", "filename", filename, "error", err)
		respondError(w, http.StatusBadGateway, analysisErrorMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, TranscriptResponse{
		Text: statement.AppendTranscript(r.FormValue("existing_text"), transcript),
	})
}

// historyData is the view model for the history browser fragment.
type historyData struct {
	Records []*history.Record
}

// handleHistory renders the saved-analysis cards for the current user.
// Query failures degrade to the empty state rather than an error page.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := s.history.ListByUser(r.Context(), session.UID)
	if err != nil {
		s.logger.Warn("history query failed", "user_id", session.UID, "error", err)
		records = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "history.html", historyData{Records: records}); err != nil {
		s.logger.Error("render history", "error", err)
	}
}

func (s *Server) renderReport(rep *report.Report) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "report.html", rep); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// analysisErrorMessage extracts the user-facing message for a failed
// backend call: the server-provided detail when available, otherwise a
// generic unreachable message.
func analysisErrorMessage(err error) string {
	var serverErr *analysis.ServerError
	if errors.As(err, &serverErr) && serverErr.Detail != "" {
		return serverErr.Detail
	}
	return "analysis backend unreachable"
}
