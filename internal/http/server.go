package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schoolbook/internal/auth"
	"schoolbook/internal/config"
	"schoolbook/internal/identity"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

type Store interface {
	ListTeachers(ctx context.Context) ([]model.Teacher, error)
	GetTeacher(ctx context.Context, teacherID int64) (model.Teacher, error)
	CreateTeacher(ctx context.Context, teacher model.Teacher) (model.Teacher, error)
	UpdateTeacher(ctx context.Context, teacherID int64, update repository.TeacherUpdate) (model.Teacher, error)
	DeleteTeacher(ctx context.Context, teacherID int64) (bool, error)

	ListSubjects(ctx context.Context) ([]model.Subject, error)
	CreateSubject(ctx context.Context, name string) (model.Subject, error)
	UpdateSubject(ctx context.Context, subjectID int64, name string) (model.Subject, error)
	DeleteSubject(ctx context.Context, subjectID int64) (bool, error)

	ListClasses(ctx context.Context) ([]model.Class, error)
	CreateClass(ctx context.Context, class model.Class) (model.Class, error)
	UpdateClass(ctx context.Context, classID int64, update repository.ClassUpdate) (model.Class, error)
	DeleteClass(ctx context.Context, classID int64) (bool, error)

	ListStudents(ctx context.Context) ([]model.Student, error)
	CreateStudent(ctx context.Context, student model.Student) (model.Student, error)
	UpdateStudent(ctx context.Context, studentID int64, update repository.StudentUpdate) (model.Student, error)
	DeleteStudent(ctx context.Context, studentID int64) (bool, error)

	ListParents(ctx context.Context) ([]model.Parent, error)
	CreateParent(ctx context.Context, parent model.Parent) (model.Parent, error)
	UpdateParent(ctx context.Context, parentID int64, update repository.ParentUpdate) (model.Parent, error)
	DeleteParent(ctx context.Context, parentID int64) (bool, error)

	ListMarks(ctx context.Context, filter repository.MarkFilter) ([]model.Mark, error)
	CreateMark(ctx context.Context, mark model.Mark) (model.Mark, error)
	DeleteMark(ctx context.Context, markID int64) (bool, error)
}

type Server struct {
	cfg      config.Config
	store    Store
	accounts *identity.Service
	revoker  *auth.Revoker
}

func NewServer(cfg config.Config, store Store, accounts *identity.Service, revoker *auth.Revoker) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		accounts: accounts,
		revoker:  revoker,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	r.Use(instrument)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	verify := s.verify(s.cfg.JWTSecret)
	verifySubject := s.verify(s.cfg.SubjectJWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.handleRegisterUser)
		r.Post("/users/login", s.handleLoginUser)
		r.With(verify).Post("/auth/logout", s.handleLogout)

		r.Route("/teachers", func(r chi.Router) {
			r.Post("/login", s.handleLoginTeacher)
			r.With(verify).Get("/get-name", s.handleGetTeacherName)
			r.With(verify, s.requireAdmin).Get("/all", s.handleListTeachers)
			r.With(verify, s.requireAdmin).Post("/create", s.handleCreateTeacher)
			r.With(verify, s.requireAdmin).Put("/edit/{id}", s.handleUpdateTeacher)
			r.With(verify, s.requireAdmin).Delete("/delete/{id}", s.handleDeleteTeacher)
		})

		r.Route("/subjects", func(r chi.Router) {
			r.Use(verifySubject, s.requireAdmin)
			r.Get("/", s.handleListSubjects)
			r.Post("/", s.handleCreateSubject)
			r.Put("/{id}", s.handleUpdateSubject)
			r.Delete("/{id}", s.handleDeleteSubject)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", s.handleListClasses)
			r.Post("/", s.handleCreateClass)
			r.With(verify, s.requireAdmin).Put("/{id}", s.handleUpdateClass)
			r.With(verify, s.requireAdmin).Delete("/{id}", s.handleDeleteClass)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", s.handleListStudents)
			r.Post("/", s.handleCreateStudent)
			r.With(verify, s.requireAdmin).Put("/{id}", s.handleUpdateStudent)
			r.With(verify, s.requireAdmin).Delete("/{id}", s.handleDeleteStudent)
		})

		r.Route("/parents", func(r chi.Router) {
			r.Get("/", s.handleListParents)
			r.Post("/", s.handleCreateParent)
			r.With(verify, s.requireAdmin).Put("/{id}", s.handleUpdateParent)
			r.With(verify, s.requireAdmin).Delete("/{id}", s.handleDeleteParent)
		})

		r.Route("/marks", func(r chi.Router) {
			r.With(verify).Get("/", s.handleListMarks)
			r.With(verify).Post("/", s.handleCreateMark)
			r.With(verify, s.requireAdmin).Delete("/{id}", s.handleDeleteMark)
		})
	})

	return r
}

// Auth

type claimsKey struct{}

// verify builds the bearer-token middleware for one signing secret. A missing
// token is a 401; anything wrong with a presented token is a 403.
func (s *Server) verify(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authorization token is required")
				return
			}
			claims, err := auth.ParseToken(secret, s.cfg.JWTIssuer, token)
			if err != nil {
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}
			if err := s.revoker.Check(r.Context(), claims); err != nil {
				if errors.Is(err, auth.ErrTokenRevoked) {
					writeError(w, http.StatusForbidden, "Invalid or expired token")
					return
				}
				s.serverError(w, r, "Token check failed", err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireAdmin admits teacher tokens that carry the admin claim and whose
// teacher row still exists with is_admin set. Deleting or demoting a teacher
// takes effect on their next request.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || !claims.IsAdmin || claims.Account != auth.AccountTeacher {
			writeError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}
		teacher, err := s.store.GetTeacher(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusForbidden, "Forbidden: Admin access required")
				return
			}
			s.serverError(w, r, "Admin check failed", err)
			return
		}
		if !teacher.IsAdmin {
			writeError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Helpers

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	log.Printf("[%s] %s %s: %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, message, err)
	writeError(w, http.StatusInternalServerError, message)
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
