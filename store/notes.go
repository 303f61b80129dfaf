package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-hub/apperr"
	"notes-hub/models"
)

const noteColumns = "SELECT id, user_id, folder_id, title, content, created_at, updated_at FROM notes"

type Notes struct {
	db execer
}

func NewNotes(conn *sql.DB) *Notes {
	return &Notes{db: conn}
}

func scanNote(sc interface{ Scan(...interface{}) error }) (models.Note, error) {
	var (
		n      models.Note
		folder sql.NullInt64
	)
	if err := sc.Scan(&n.ID, &n.UserID, &folder, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return n, err
	}
	if folder.Valid {
		id := int(folder.Int64)
		n.FolderID = &id
	}
	return n, nil
}

func nullableID(id *int) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func (s *Notes) List(ctx context.Context, scope Scope) ([]models.Note, error) {
	defer observe("list", "notes", time.Now())

	query, args := scope.where(noteColumns, false, nil)
	rows, err := s.db.QueryContext(ctx, query+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Notes) Find(ctx context.Context, scope Scope, id int) (*models.Note, error) {
	defer observe("find", "notes", time.Now())

	query, args := scope.where(noteColumns+" WHERE id = ?", true, []interface{}{id})
	n, err := scanNote(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	return &n, nil
}

func (s *Notes) Insert(ctx context.Context, n *models.Note) error {
	defer observe("insert", "notes", time.Now())

	ts := now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (user_id, folder_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		n.UserID, nullableID(n.FolderID), n.Title, n.Content, ts, ts)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	n.ID = int(id)
	n.CreatedAt = ts
	n.UpdatedAt = ts
	return nil
}

func (s *Notes) Update(ctx context.Context, scope Scope, n *models.Note) error {
	defer observe("update", "notes", time.Now())

	ts := now()
	query, args := scope.where("UPDATE notes SET folder_id = ?, title = ?, content = ?, updated_at = ? WHERE id = ?", true,
		[]interface{}{nullableID(n.FolderID), n.Title, n.Content, ts, n.ID})
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update note %d: %w", n.ID, err)
	}
	n.UpdatedAt = ts
	return nil
}

func (s *Notes) Delete(ctx context.Context, scope Scope, id int) error {
	defer observe("delete", "notes", time.Now())

	query, args := scope.where("DELETE FROM notes WHERE id = ?", true, []interface{}{id})
	return execDelete(ctx, s.db, "note", id, query, args)
}
