package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"schoolbook/internal/auth"
	"schoolbook/internal/crypto"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

// subjectList accepts either a JSON array of subject names or a single
// comma-separated string and normalizes both to "A,B,C".
type subjectList string

func (l *subjectList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = subjectList(joinSubjects(items))
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("subjects must be a string or an array of strings")
	}
	*l = subjectList(joinSubjects(strings.Split(raw, ",")))
	return nil
}

func joinSubjects(items []string) string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return strings.Join(out, ",")
}

type teacherSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Subjects string `json:"subjects"`
	IsAdmin  bool   `json:"is_admin"`
}

type createTeacherRequest struct {
	FullName string      `json:"fullname"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Email    string      `json:"email"`
	Subjects subjectList `json:"subjects"`
	IsAdmin  *bool       `json:"is_admin,omitempty"`
}

type createTeacherResponse struct {
	Message   string `json:"message"`
	TeacherID int64  `json:"teacherId"`
	teacherSummary
}

type updateTeacherRequest struct {
	FullName *string      `json:"fullname,omitempty"`
	Username *string      `json:"username,omitempty"`
	Password *string      `json:"password,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Subjects *subjectList `json:"subjects,omitempty"`
	IsAdmin  *bool        `json:"is_admin,omitempty"`
}

type updateTeacherResponse struct {
	Message string `json:"message"`
	teacherSummary
}

type teacherNameResponse struct {
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func mapTeacher(teacher model.Teacher) teacherSummary {
	return teacherSummary{
		ID:       teacher.ID,
		FullName: teacher.Name,
		Username: teacher.Username,
		Email:    teacher.Email,
		Subjects: teacher.Subjects,
		IsAdmin:  teacher.IsAdmin,
	}
}

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := s.store.ListTeachers(r.Context())
	if err != nil {
		s.serverError(w, r, "Database error", err)
		return
	}

	resp := make([]teacherSummary, 0, len(teachers))
	for _, teacher := range teachers {
		resp = append(resp, mapTeacher(teacher))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req createTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.FullName == "" || req.Username == "" || req.Password == "" || req.Email == "" || req.Subjects == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.serverError(w, r, "Failed to create teacher", err)
		return
	}

	teacher := model.Teacher{
		Name:         req.FullName,
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Subjects:     string(req.Subjects),
	}
	if req.IsAdmin != nil {
		teacher.IsAdmin = *req.IsAdmin
	}

	teacher, err = s.store.CreateTeacher(r.Context(), teacher)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		s.serverError(w, r, "Failed to create teacher", err)
		return
	}

	writeJSON(w, http.StatusCreated, createTeacherResponse{
		Message:        "Teacher created successfully",
		TeacherID:      teacher.ID,
		teacherSummary: mapTeacher(teacher),
	})
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}

	var req updateTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := repository.TeacherUpdate{IsAdmin: req.IsAdmin}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name != "" {
			update.Name = &name
		}
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != "" {
			update.Username = &username
		}
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email != "" {
			update.Email = &email
		}
	}
	if req.Subjects != nil && *req.Subjects != "" {
		subjects := string(*req.Subjects)
		update.Subjects = &subjects
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			s.serverError(w, r, "Failed to update teacher", err)
			return
		}
		update.PasswordHash = &hash
	}

	teacher, err := s.store.UpdateTeacher(r.Context(), teacherID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Teacher not found")
		case errors.Is(err, repository.ErrDuplicate):
			writeError(w, http.StatusBadRequest, "Username already exists")
		default:
			s.serverError(w, r, "Failed to update teacher", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, updateTeacherResponse{
		Message:        "Teacher updated successfully",
		teacherSummary: mapTeacher(teacher),
	})
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}

	deleted, err := s.store.DeleteTeacher(r.Context(), teacherID)
	if err != nil {
		s.serverError(w, r, "Failed to delete teacher", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Teacher not found")
		return
	}

	writeMessage(w, http.StatusOK, "Teacher deleted successfully")
}

func (s *Server) handleGetTeacherName(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	if claims.Account != auth.AccountTeacher {
		writeError(w, http.StatusForbidden, "Teacher account required")
		return
	}

	teacher, err := s.store.GetTeacher(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.serverError(w, r, "Database error", err)
		return
	}

	writeJSON(w, http.StatusOK, teacherNameResponse{
		Name:    teacher.Name,
		IsAdmin: teacher.IsAdmin,
	})
}
