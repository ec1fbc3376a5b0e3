package repository

import (
	"context"

	"schoolbook/internal/model"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	row := s.pool.QueryRow(ctx, `
    SELECT id, username, password_hash, role, login_token, created_at
    FROM users
    WHERE username = $1
  `, username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.LoginToken, &user.CreatedAt)
	return user, translate(err)
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	row := s.pool.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
  `, user.Username, user.PasswordHash, user.Role)
	err := row.Scan(&user.ID, &user.CreatedAt)
	return user, translate(err)
}

func (s *Store) SetUserLoginToken(ctx context.Context, userID int64, token *string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET login_token = $1 WHERE id = $2`, token, userID)
	return translate(err)
}
