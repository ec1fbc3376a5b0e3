package repository

import (
	"context"

	"schoolbook/internal/model"
)

func (s *Store) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, subject_name FROM subjects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var subject model.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (s *Store) CreateSubject(ctx context.Context, name string) (model.Subject, error) {
	subject := model.Subject{Name: name}
	err := s.pool.QueryRow(ctx, `INSERT INTO subjects (subject_name) VALUES ($1) RETURNING id`, name).Scan(&subject.ID)
	return subject, translate(err)
}

func (s *Store) UpdateSubject(ctx context.Context, subjectID int64, name string) (model.Subject, error) {
	subject := model.Subject{ID: subjectID}
	err := s.pool.QueryRow(ctx, `
    UPDATE subjects SET subject_name = $2 WHERE id = $1
    RETURNING subject_name
  `, subjectID, name).Scan(&subject.Name)
	return subject, translate(err)
}

func (s *Store) DeleteSubject(ctx context.Context, subjectID int64) (bool, error) {
	return execDelete(ctx, s.pool, `DELETE FROM subjects WHERE id = $1`, subjectID)
}
