package repository

import (
	"context"

	"schoolbook/internal/model"
)

type StudentUpdate struct {
	Name    *string
	ClassID *int64
}

func (s *Store) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, class_id FROM students ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var student model.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.ClassID); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func (s *Store) CreateStudent(ctx context.Context, student model.Student) (model.Student, error) {
	err := s.pool.QueryRow(ctx, `
    INSERT INTO students (name, class_id) VALUES ($1, $2) RETURNING id
  `, student.Name, student.ClassID).Scan(&student.ID)
	return student, translate(err)
}

func (s *Store) UpdateStudent(ctx context.Context, studentID int64, update StudentUpdate) (model.Student, error) {
	var student model.Student
	err := s.pool.QueryRow(ctx, `
    UPDATE students
    SET name = COALESCE($2, name),
        class_id = COALESCE($3, class_id)
    WHERE id = $1
    RETURNING id, name, class_id
  `, studentID, update.Name, update.ClassID).Scan(&student.ID, &student.Name, &student.ClassID)
	return student, translate(err)
}

func (s *Store) DeleteStudent(ctx context.Context, studentID int64) (bool, error) {
	return execDelete(ctx, s.pool, `DELETE FROM students WHERE id = $1`, studentID)
}
