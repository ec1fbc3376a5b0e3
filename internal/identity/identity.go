// Package identity implements login, registration and logout for every
// login-capable account kind behind one credential flow. Each kind plugs in a
// Policy that knows how to find its accounts and how long its tokens live.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"schoolbook/internal/auth"
	"schoolbook/internal/crypto"
	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

type Kind string

const (
	KindUser    Kind = auth.AccountUser
	KindTeacher Kind = auth.AccountTeacher
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnknownKind        = errors.New("unknown account kind")
)

type Store interface {
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	GetTeacherByUsername(ctx context.Context, username string) (model.Teacher, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	SetUserLoginToken(ctx context.Context, userID int64, token *string) error
	SetTeacherToken(ctx context.Context, teacherID int64, token *string) error
}

type Account struct {
	Kind         Kind
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	IsAdmin      bool
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   Account
}

type Service struct {
	store    Store
	secret   string
	issuer   string
	revoker  *auth.Revoker
	policies map[Kind]Policy
}

func NewService(store Store, secret, issuer string, revoker *auth.Revoker, policies ...Policy) *Service {
	byKind := make(map[Kind]Policy, len(policies))
	for _, policy := range policies {
		byKind[policy.Kind] = policy
	}
	return &Service{
		store:    store,
		secret:   secret,
		issuer:   issuer,
		revoker:  revoker,
		policies: byKind,
	}
}

// Login verifies the credentials of an account of the given kind and issues a
// signed token. The token is also written to the account row; that copy is
// never consulted when verifying requests.
func (s *Service) Login(ctx context.Context, kind Kind, username, password string) (Session, error) {
	policy, ok := s.policies[kind]
	if !ok {
		return Session{}, ErrUnknownKind
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrMissingFields
	}

	account, err := policy.find(ctx, s.store, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find %s: %w", kind, err)
	}
	if err := crypto.CheckPassword(account.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(s.secret, s.issuer, policy.TTL, auth.Claims{
		UserID:  account.ID,
		Account: string(kind),
		Role:    account.Role,
		IsAdmin: account.IsAdmin,
	})
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	if err := policy.saveToken(ctx, s.store, account.ID, &token); err != nil {
		return Session{}, fmt.Errorf("save token: %w", err)
	}

	return Session{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(policy.TTL),
		Account:   account,
	}, nil
}

func (s *Service) Register(ctx context.Context, username, password, role string) (model.User, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(strings.ToLower(role))
	if username == "" || password == "" || role == "" {
		return model.User{}, ErrMissingFields
	}
	if !model.IsValidRole(role) {
		return model.User{}, ErrInvalidRole
	}

	exists, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return model.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return model.User{}, ErrAccountExists
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, ErrAccountExists
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Logout denylists the token until it expires and clears the stored copy.
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return ErrInvalidCredentials
	}
	policy, ok := s.policies[Kind(claims.Account)]
	if !ok {
		return ErrUnknownKind
	}
	if err := s.revoker.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return policy.saveToken(ctx, s.store, claims.UserID, nil)
}
