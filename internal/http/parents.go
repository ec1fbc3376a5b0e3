package http

import (
	"errors"
	"net/http"
	"strings"

	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

type parentResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createParentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateParentRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type parentWriteResponse struct {
	Message string `json:"message"`
	parentResponse
}

func mapParent(parent model.Parent) parentResponse {
	return parentResponse{ID: parent.ID, Name: parent.Name, Email: parent.Email}
}

func (s *Server) handleListParents(w http.ResponseWriter, r *http.Request) {
	parents, err := s.store.ListParents(r.Context())
	if err != nil {
		s.serverError(w, r, "Database error", err)
		return
	}

	resp := make([]parentResponse, 0, len(parents))
	for _, parent := range parents {
		resp = append(resp, mapParent(parent))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateParent(w http.ResponseWriter, r *http.Request) {
	var req createParentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	parent, err := s.store.CreateParent(r.Context(), model.Parent{Name: req.Name, Email: req.Email})
	if err != nil {
		s.serverError(w, r, "Error creating parent", err)
		return
	}

	writeJSON(w, http.StatusCreated, parentWriteResponse{
		Message:        "Parent created",
		parentResponse: mapParent(parent),
	})
}

func (s *Server) handleUpdateParent(w http.ResponseWriter, r *http.Request) {
	parentID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid parent id")
		return
	}

	var req updateParentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var update repository.ParentUpdate
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			update.Name = &name
		}
	}
	if req.Email != nil {
		if email := strings.TrimSpace(strings.ToLower(*req.Email)); email != "" {
			update.Email = &email
		}
	}

	parent, err := s.store.UpdateParent(r.Context(), parentID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Parent not found")
			return
		}
		s.serverError(w, r, "Error updating parent", err)
		return
	}

	writeJSON(w, http.StatusOK, parentWriteResponse{
		Message:        "Parent updated",
		parentResponse: mapParent(parent),
	})
}

func (s *Server) handleDeleteParent(w http.ResponseWriter, r *http.Request) {
	parentID, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid parent id")
		return
	}

	deleted, err := s.store.DeleteParent(r.Context(), parentID)
	if err != nil {
		s.serverError(w, r, "Error deleting parent", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Parent not found")
		return
	}
	writeMessage(w, http.StatusOK, "Parent deleted")
}
