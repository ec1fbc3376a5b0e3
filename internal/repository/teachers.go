package repository

import (
	"context"

	"schoolbook/internal/model"
)

// TeacherUpdate lists the columns a partial update may touch. Nil fields keep
// their stored value.
type TeacherUpdate struct {
	Name         *string
	Username     *string
	PasswordHash *string
	Email        *string
	Subjects     *string
	IsAdmin      *bool
}

const teacherColumns = `id, name, username, hashed_password, email, subjects, is_admin, token`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeacher(row rowScanner) (model.Teacher, error) {
	var teacher model.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Username,
		&teacher.PasswordHash,
		&teacher.Email,
		&teacher.Subjects,
		&teacher.IsAdmin,
		&teacher.Token,
	)
	return teacher, err
}

func (s *Store) ListTeachers(ctx context.Context) ([]model.Teacher, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func (s *Store) GetTeacher(ctx context.Context, teacherID int64) (model.Teacher, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, teacherID)
	teacher, err := scanTeacher(row)
	return teacher, translate(err)
}

func (s *Store) GetTeacherByUsername(ctx context.Context, username string) (model.Teacher, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE username = $1`, username)
	teacher, err := scanTeacher(row)
	return teacher, translate(err)
}

func (s *Store) CreateTeacher(ctx context.Context, teacher model.Teacher) (model.Teacher, error) {
	row := s.pool.QueryRow(ctx, `
    INSERT INTO teachers (name, username, hashed_password, email, subjects, is_admin)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, teacher.Name, teacher.Username, teacher.PasswordHash, teacher.Email, teacher.Subjects, teacher.IsAdmin)
	err := row.Scan(&teacher.ID)
	return teacher, translate(err)
}

func (s *Store) UpdateTeacher(ctx context.Context, teacherID int64, update TeacherUpdate) (model.Teacher, error) {
	row := s.pool.QueryRow(ctx, `
    UPDATE teachers
    SET name = COALESCE($2, name),
        username = COALESCE($3, username),
        hashed_password = COALESCE($4, hashed_password),
        email = COALESCE($5, email),
        subjects = COALESCE($6, subjects),
        is_admin = COALESCE($7, is_admin)
    WHERE id = $1
    RETURNING `+teacherColumns,
		teacherID, update.Name, update.Username, update.PasswordHash, update.Email, update.Subjects, update.IsAdmin)
	teacher, err := scanTeacher(row)
	return teacher, translate(err)
}

func (s *Store) DeleteTeacher(ctx context.Context, teacherID int64) (bool, error) {
	return execDelete(ctx, s.pool, `DELETE FROM teachers WHERE id = $1`, teacherID)
}

func (s *Store) SetTeacherToken(ctx context.Context, teacherID int64, token *string) error {
	_, err := s.pool.Exec(ctx, `UPDATE teachers SET token = $1 WHERE id = $2`, token, teacherID)
	return translate(err)
}
