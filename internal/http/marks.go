package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"schoolbook/internal/auth"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

// Marks are stored as NUMERIC(3,2).
const maxMark = 10

type markResponse struct {
	ID           int64   `json:"id"`
	StudentID    int64   `json:"student_id"`
	SubjectID    int64   `json:"subject_id"`
	TeacherID    int64   `json:"teacher_id"`
	Mark         float64 `json:"mark"`
	DateAssigned string  `json:"date_assigned"`
	Comment      *string `json:"comment"`
}

type createMarkRequest struct {
	StudentID    int64    `json:"student_id"`
	SubjectID    int64    `json:"subject_id"`
	TeacherID    *int64   `json:"teacher_id,omitempty"`
	Mark         *float64 `json:"mark"`
	DateAssigned string   `json:"date_assigned"`
	Comment      *string  `json:"comment,omitempty"`
}

type markCreatedResponse struct {
	Message string `json:"message"`
	markResponse
}

func mapMark(mark model.Mark) markResponse {
	return markResponse{
		ID:           mark.ID,
		StudentID:    mark.StudentID,
		SubjectID:    mark.SubjectID,
		TeacherID:    mark.TeacherID,
		Mark:         mark.Value,
		DateAssigned: mark.DateAssigned.Format("2006-01-02"),
		Comment:      mark.Comment,
	}
}

func (s *Server) handleListMarks(w http.ResponseWriter, r *http.Request) {
	var filter repository.MarkFilter
	for name, target := range map[string]**int64{
		"student_id": &filter.StudentID,
		"subject_id": &filter.SubjectID,
	} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid "+name)
			return
		}
		*target = &id
	}

	marks, err := s.store.ListMarks(r.Context(), filter)
	if err != nil {
		s.serverError(w, r, "Database error", err)
		return
	}

	resp := make([]markResponse, 0, len(marks))
	for _, mark := range marks {
		resp = append(resp, mapMark(mark))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateMark(w http.ResponseWriter, r *http.Request) {
	var req createMarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Only teachers record marks; a non-admin teacher records them in their own name.
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.Account != auth.AccountTeacher {
		writeError(w, http.StatusForbidden, "Teacher account required")
		return
	}
	teacherID := claims.UserID
	if req.TeacherID != nil && *req.TeacherID != claims.UserID {
		if !claims.IsAdmin {
			writeError(w, http.StatusForbidden, "Cannot record marks for another teacher")
			return
		}
		teacherID = *req.TeacherID
	}
	if req.StudentID <= 0 || req.SubjectID <= 0 || teacherID <= 0 || req.Mark == nil || strings.TrimSpace(req.DateAssigned) == "" {
		writeError(w, http.StatusBadRequest, "student_id, subject_id, mark and date_assigned are required")
		return
	}
	value := math.Round(*req.Mark*100) / 100
	if value < 0 || value >= maxMark {
		writeError(w, http.StatusBadRequest, "Mark must be between 0 and 9.99")
		return
	}
	assigned, err := parseMarkDate(req.DateAssigned)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date_assigned must be YYYY-MM-DD or RFC 3339")
		return
	}

	mark, err := s.store.CreateMark(r.Context(), model.Mark{
		StudentID:    req.StudentID,
		SubjectID:    req.SubjectID,
		TeacherID:    teacherID,
		Value:        value,
		DateAssigned: assigned,
		Comment:      req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidReference):
			writeError(w, http.StatusBadRequest, "Student, subject or teacher does not exist")
		case errors.Is(err, repository.ErrOutOfRange):
			writeError(w, http.StatusBadRequest, "Mark must be between 0 and 9.99")
		default:
			s.serverError(w, r, "Error creating mark", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, markCreatedResponse{
		Message:      "Mark created",
		markResponse: mapMark(mark),
	})
}

func (s *Server) handleDeleteMark(w http.ResponseWriter, r *http.Request) {
	markID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid mark id")
		return
	}

	deleted, err := s.store.DeleteMark(r.Context(), markID)
	if err != nil {
		s.serverError(w, r, "Error deleting mark", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Mark not found")
		return
	}
	writeMessage(w, http.StatusOK, "Mark deleted")
}

func parseMarkDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if day, err := time.Parse("2006-01-02", raw); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}
