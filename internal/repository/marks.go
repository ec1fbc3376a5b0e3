package repository

import (
	"context"

	"schoolbook/internal/model"
)

type MarkFilter struct {
	StudentID *int64
	SubjectID *int64
}

func (s *Store) ListMarks(ctx context.Context, filter MarkFilter) ([]model.Mark, error) {
	rows, err := s.pool.Query(ctx, `
    SELECT id, student_id, subject_id, teacher_id, mark, date_assigned, comment
    FROM marks
    WHERE ($1::bigint IS NULL OR student_id = $1)
      AND ($2::bigint IS NULL OR subject_id = $2)
    ORDER BY date_assigned, id
  `, filter.StudentID, filter.SubjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := []model.Mark{}
	for rows.Next() {
		var mark model.Mark
		if err := rows.Scan(
			&mark.ID,
			&mark.StudentID,
			&mark.SubjectID,
			&mark.TeacherID,
			&mark.Value,
			&mark.DateAssigned,
			&mark.Comment,
		); err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

func (s *Store) CreateMark(ctx context.Context, mark model.Mark) (model.Mark, error) {
	err := s.pool.QueryRow(ctx, `
    INSERT INTO marks (student_id, subject_id, teacher_id, mark, date_assigned, comment)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, mark.StudentID, mark.SubjectID, mark.TeacherID, mark.Value, mark.DateAssigned, mark.Comment).Scan(&mark.ID)
	return mark, translate(err)
}

func (s *Store) DeleteMark(ctx context.Context, markID int64) (bool, error) {
	return execDelete(ctx, s.pool, `DELETE FROM marks WHERE id = $1`, markID)
}
