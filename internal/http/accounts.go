package http

import (
	"errors"
	"net/http"

	"schoolbook/internal/identity"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type teacherLoginResponse struct {
	Message string `json:"message"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

type userLoginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Username, password, and role are required.")
		case errors.Is(err, identity.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "Role must be one of admin, teacher, student, parent.")
		case errors.Is(err, identity.ErrAccountExists):
			writeError(w, http.StatusBadRequest, "User already exists.")
		default:
			s.serverError(w, r, "User registration failed.", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

func (s *Server) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	session, ok := s.login(w, r, identity.KindUser)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, userLoginResponse{
		Message: "Login successful",
		Role:    session.Account.Role,
		IsAdmin: session.Account.IsAdmin,
		Token:   session.Token,
	})
}

func (s *Server) handleLoginTeacher(w http.ResponseWriter, r *http.Request) {
	session, ok := s.login(w, r, identity.KindTeacher)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, teacherLoginResponse{
		Message: "Login successful",
		IsAdmin: session.Account.IsAdmin,
		Token:   session.Token,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, kind identity.Kind) (identity.Session, bool) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return identity.Session{}, false
	}

	session, err := s.accounts.Login(r.Context(), kind, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, identity.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
		default:
			s.serverError(w, r, "Login failed", err)
		}
		return identity.Session{}, false
	}
	return session, true
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	if err := s.accounts.Logout(r.Context(), claims); err != nil {
		if errors.Is(err, identity.ErrUnknownKind) {
			writeError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}
		s.serverError(w, r, "Logout failed", err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out")
}
