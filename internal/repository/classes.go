package repository

import (
	"context"

	"schoolbook/internal/model"
)

type ClassUpdate struct {
	Name          *string
	MainTeacherID *int64
}

func (s *Store) ListClasses(ctx context.Context) ([]model.Class, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, main_teacher_id FROM classes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		var class model.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.MainTeacherID); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func (s *Store) CreateClass(ctx context.Context, class model.Class) (model.Class, error) {
	err := s.pool.QueryRow(ctx, `
    INSERT INTO classes (name, main_teacher_id) VALUES ($1, $2) RETURNING id
  `, class.Name, class.MainTeacherID).Scan(&class.ID)
	return class, translate(err)
}

func (s *Store) UpdateClass(ctx context.Context, classID int64, update ClassUpdate) (model.Class, error) {
	var class model.Class
	err := s.pool.QueryRow(ctx, `
    UPDATE classes
    SET name = COALESCE($2, name),
        main_teacher_id = COALESCE($3, main_teacher_id)
    WHERE id = $1
    RETURNING id, name, main_teacher_id
  `, classID, update.Name, update.MainTeacherID).Scan(&class.ID, &class.Name, &class.MainTeacherID)
	return class, translate(err)
}

func (s *Store) DeleteClass(ctx context.Context, classID int64) (bool, error) {
	return execDelete(ctx, s.pool, `DELETE FROM classes WHERE id = $1`, classID)
}
