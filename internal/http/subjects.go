package http

import (
	"errors"
	"net/http"
	"strings"

	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

type subjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"subject_name"`
}

type subjectRequest struct {
	Name string `json:"subject_name"`
}

type subjectCreatedResponse struct {
	Message string `json:"message"`
	subjectResponse
}

func mapSubject(subject model.Subject) subjectResponse {
	return subjectResponse{ID: subject.ID, Name: subject.Name}
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.store.ListSubjects(r.Context())
	if err != nil {
		s.serverError(w, r, "Internal Server Error", err)
		return
	}

	resp := make([]subjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		resp = append(resp, mapSubject(subject))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeSubjectName(w, r)
	if !ok {
		return
	}

	subject, err := s.store.CreateSubject(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "Subject already exists")
			return
		}
		s.serverError(w, r, "Internal Server Error", err)
		return
	}

	writeJSON(w, http.StatusCreated, subjectCreatedResponse{
		Message:         "Subject created",
		subjectResponse: mapSubject(subject),
	})
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid subject id")
		return
	}
	name, ok := decodeSubjectName(w, r)
	if !ok {
		return
	}

	if _, err := s.store.UpdateSubject(r.Context(), subjectID, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Subject not found")
			return
		}
		s.serverError(w, r, "Internal Server Error", err)
		return
	}
	writeMessage(w, http.StatusOK, "Subject updated")
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid subject id")
		return
	}

	deleted, err := s.store.DeleteSubject(r.Context(), subjectID)
	if err != nil {
		s.serverError(w, r, "Internal Server Error", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Subject not found")
		return
	}
	writeMessage(w, http.StatusOK, "Subject deleted")
}

func decodeSubjectName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req subjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Subject name is required")
		return "", false
	}
	return name, true
}
