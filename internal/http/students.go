package http

import (
	"errors"
	"net/http"
	"strings"

	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

type studentResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	ClassID *int64 `json:"class_id"`
}

type createStudentRequest struct {
	Name    string `json:"name"`
	ClassID *int64 `json:"class_id,omitempty"`
}

type updateStudentRequest struct {
	Name    *string `json:"name,omitempty"`
	ClassID *int64  `json:"class_id,omitempty"`
}

type studentWriteResponse struct {
	Message string `json:"message"`
	studentResponse
}

func mapStudent(student model.Student) studentResponse {
	return studentResponse{ID: student.ID, Name: student.Name, ClassID: student.ClassID}
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.store.ListStudents(r.Context())
	if err != nil {
		s.serverError(w, r, "Database error", err)
		return
	}

	resp := make([]studentResponse, 0, len(students))
	for _, student := range students {
		resp = append(resp, mapStudent(student))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Student name is required")
		return
	}

	student, err := s.store.CreateStudent(r.Context(), model.Student{Name: req.Name, ClassID: req.ClassID})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			writeError(w, http.StatusBadRequest, "Class does not exist")
			return
		}
		s.serverError(w, r, "Error creating student", err)
		return
	}

	writeJSON(w, http.StatusCreated, studentWriteResponse{
		Message:         "Student created",
		studentResponse: mapStudent(student),
	})
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	var req updateStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	update := repository.StudentUpdate{ClassID: req.ClassID}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "Student name cannot be empty")
			return
		}
		update.Name = &name
	}

	student, err := s.store.UpdateStudent(r.Context(), studentID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Student not found")
		case errors.Is(err, repository.ErrInvalidReference):
			writeError(w, http.StatusBadRequest, "Class does not exist")
		default:
			s.serverError(w, r, "Error updating student", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, studentWriteResponse{
		Message:         "Student updated",
		studentResponse: mapStudent(student),
	})
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	deleted, err := s.store.DeleteStudent(r.Context(), studentID)
	if err != nil {
		s.serverError(w, r, "Error deleting student", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Student not found")
		return
	}
	writeMessage(w, http.StatusOK, "Student deleted")
}
