package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/KalebGordon/Rivoney/internal/gaps"
	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/resume"
	"github.com/KalebGordon/Rivoney/internal/tailor"
)

// SaveResumeRequest represents the request body for /resume/save
type SaveResumeRequest struct {
	UserID string          `json:"user_id" validate:"required,min=1"`
	Resume json.RawMessage `json:"resume" validate:"required"`
}

// SaveResumeResponse represents the response for /resume/save
type SaveResumeResponse struct {
	UserID    string `json:"user_id"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
}

// AnalyzeGapsRequest represents the request body for /analyze/gaps
type AnalyzeGapsRequest struct {
	UserID         string          `json:"user_id,omitempty"`
	JobDescription string          `json:"job_description" validate:"required,min=1"`
	Resume         json.RawMessage `json:"resume,omitempty"`
}

// AnalyzeGapsResponse represents the response for /analyze/gaps
type AnalyzeGapsResponse struct {
	Questions []gaps.Question `json:"questions"`
}

// GenerateRequest represents the request body for /generate. Questions are
// passed back verbatim from a prior gap analysis; answers are keyed by
// question index.
type GenerateRequest struct {
	UserID         string                  `json:"user_id,omitempty"`
	JobDescription string                  `json:"job_description" validate:"required,min=1"`
	Questions      []json.RawMessage       `json:"questions,omitempty"`
	Answers        map[int][]ops.AnswerRow `json:"answers,omitempty"`
}

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	Resume *resume.Document `json:"resume"`
}

// handleSaveResume stores a new resume version
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	var req SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	doc, err := resume.Parse(req.Resume)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume document: "+err.Error())
		return
	}

	result, err := s.svc.Save(r.Context(), req.UserID, doc)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SaveResumeResponse{
		UserID:    req.UserID,
		Version:   result.Version,
		CreatedAt: result.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// handleLatestResume returns the latest stored resume for a user
func (s *Server) handleLatestResume(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	doc, err := s.svc.Latest(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*resume.Document{"resume": doc})
}

// handleTemplateOptions returns selectable experience names for the frontend
func (s *Server) handleTemplateOptions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = tailor.DefaultUserID
	}

	options, err := s.svc.TemplateOptions(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string][]string{"options": options})
}

// handleAnalyzeGaps proposes gap questions for a job description
func (s *Server) handleAnalyzeGaps(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeGapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.UserID == "" {
		req.UserID = tailor.DefaultUserID
	}

	var inline *resume.Document
	if len(req.Resume) > 0 {
		doc, err := resume.Parse(req.Resume)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume document: "+err.Error())
			return
		}
		inline = doc
	}

	questions, err := s.svc.AnalyzeGaps(r.Context(), req.UserID, inline, req.JobDescription)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeGapsResponse{Questions: questions})
}

// handleGenerate runs the tailoring flow and returns the merged resume
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.UserID == "" {
		req.UserID = tailor.DefaultUserID
	}

	merged, err := s.svc.Generate(r.Context(), tailor.GenerateInput{
		UserID:         req.UserID,
		JobDescription: req.JobDescription,
		Questions:      req.Questions,
		Answers:        req.Answers,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{Resume: merged})
}
