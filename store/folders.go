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

const folderColumns = "SELECT id, user_id, name, created_at, updated_at FROM folders"

type Folders struct {
	db execer
}

func NewFolders(conn *sql.DB) *Folders {
	return &Folders{db: conn}
}

func scanFolder(sc interface{ Scan(...interface{}) error }) (models.Folder, error) {
	var f models.Folder
	err := sc.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (s *Folders) Find(ctx context.Context, scope Scope, id int) (*models.Folder, error) {
	defer observe("find", "folders", time.Now())

	query, args := scope.where(folderColumns+" WHERE id = ?", true, []interface{}{id})
	f, err := scanFolder(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find folder %d: %w", id, err)
	}
	return &f, nil
}

func (s *Folders) Insert(ctx context.Context, f *models.Folder) error {
	defer observe("insert", "folders", time.Now())

	ts := now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO folders (user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		f.UserID, f.Name, ts, ts)
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}
	f.ID = int(id)
	f.CreatedAt = ts
	f.UpdatedAt = ts
	return nil
}

// Update persists f.Name. Callers load the folder through Find first, so a
// zero affected-row count (unchanged values) is not treated as missing.
func (s *Folders) Update(ctx context.Context, scope Scope, f *models.Folder) error {
	defer observe("update", "folders", time.Now())

	ts := now()
	query, args := scope.where("UPDATE folders SET name = ?, updated_at = ? WHERE id = ?", true,
		[]interface{}{f.Name, ts, f.ID})
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update folder %d: %w", f.ID, err)
	}
	f.UpdatedAt = ts
	return nil
}

func (s *Folders) Delete(ctx context.Context, scope Scope, id int) error {
	defer observe("delete", "folders", time.Now())

	query, args := scope.where("DELETE FROM folders WHERE id = ?", true, []interface{}{id})
	return execDelete(ctx, s.db, "folder", id, query, args)
}

func execDelete(ctx context.Context, conn execer, entity string, id int, query string, args []interface{}) error {
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", entity, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", entity, id, err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
