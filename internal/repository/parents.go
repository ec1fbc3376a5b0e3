package repository

import (
	"context"

	"schoolbook/internal/model"
)

type ParentUpdate struct {
	Name  *string
	Email *string
}

func (s *Store) ListParents(ctx context.Context) ([]model.Parent, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, email FROM parents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parents := []model.Parent{}
	for rows.Next() {
		var parent model.Parent
		if err := rows.Scan(&parent.ID, &parent.Name, &parent.Email); err != nil {
			return nil, err
		}
		parents = append(parents, parent)
	}
	return parents, rows.Err()
}

func (s *Store) CreateParent(ctx context.Context, parent model.Parent) (model.Parent, error) {
	err := s.pool.QueryRow(ctx, `
    INSERT INTO parents (name, email) VALUES ($1, $2) RETURNING id
  `, parent.Name, parent.Email).Scan(&parent.ID)
	return parent, translate(err)
}

func (s *Store) UpdateParent(ctx context.Context, parentID int64, update ParentUpdate) (model.Parent, error) {
	var parent model.Parent
	err := s.pool.QueryRow(ctx, `
    UPDATE parents
    SET name = COALESCE($2, name),
        email = COALESCE($3, email)
    WHERE id = $1
    RETURNING id, name, email
  `, parentID, update.Name, update.Email).Scan(&parent.ID, &parent.Name, &parent.Email)
	return parent, translate(err)
}

func (s *Store) DeleteParent(ctx context.Context, parentID int64) (bool, error) {
	return execDelete(ctx, s.pool, `DELETE FROM parents WHERE id = $1`, parentID)
}
