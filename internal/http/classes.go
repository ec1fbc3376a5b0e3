package http

import (
	"errors"
	"net/http"
	"strings"

	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

type classResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	MainTeacherID *int64 `json:"main_teacher_id"`
}

type createClassRequest struct {
	Name          string `json:"name"`
	MainTeacherID *int64 `json:"main_teacher_id,omitempty"`
}

type updateClassRequest struct {
	Name          *string `json:"name,omitempty"`
	MainTeacherID *int64  `json:"main_teacher_id,omitempty"`
}

type classWriteResponse struct {
	Message string `json:"message"`
	classResponse
}

func mapClass(class model.Class) classResponse {
	return classResponse{ID: class.ID, Name: class.Name, MainTeacherID: class.MainTeacherID}
}

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.store.ListClasses(r.Context())
	if err != nil {
		s.serverError(w, r, "Database error", err)
		return
	}

	resp := make([]classResponse, 0, len(classes))
	for _, class := range classes {
		resp = append(resp, mapClass(class))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Class name is required")
		return
	}

	class, err := s.store.CreateClass(r.Context(), model.Class{Name: req.Name, MainTeacherID: req.MainTeacherID})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			writeError(w, http.StatusBadRequest, "Main teacher does not exist")
			return
		}
		s.serverError(w, r, "Error creating class", err)
		return
	}

	writeJSON(w, http.StatusCreated, classWriteResponse{
		Message:       "Class created",
		classResponse: mapClass(class),
	})
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	classID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid class id")
		return
	}

	var req updateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	update := repository.ClassUpdate{MainTeacherID: req.MainTeacherID}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "Class name cannot be empty")
			return
		}
		update.Name = &name
	}

	class, err := s.store.UpdateClass(r.Context(), classID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Class not found")
		case errors.Is(err, repository.ErrInvalidReference):
			writeError(w, http.StatusBadRequest, "Main teacher does not exist")
		default:
			s.serverError(w, r, "Error updating class", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, classWriteResponse{
		Message:       "Class updated",
		classResponse: mapClass(class),
	})
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	classID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid class id")
		return
	}

	deleted, err := s.store.DeleteClass(r.Context(), classID)
	if err != nil {
		s.serverError(w, r, "Error deleting class", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Class not found")
		return
	}
	writeMessage(w, http.StatusOK, "Class deleted")
}
