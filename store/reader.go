package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"notes-hub/apperr"
	"notes-hub/db"
)

const (
	folderRowColumns = "SELECT id, user_id AS `user`, name, created_at, updated_at FROM folders"
	noteRowColumns   = "SELECT id, user_id AS `user`, folder_id AS folder, title, content, created_at, updated_at FROM notes"
)

// RowReader serves the row-shaped read queries with bound parameters.
type RowReader struct {
	db db.Querier
}

func NewRowReader(conn *sql.DB) *RowReader {
	return &RowReader{db: conn}
}

func (r *RowReader) ListFolders(ctx context.Context, scope Scope) ([]db.Row, error) {
	defer observe("raw_list", "folders", time.Now())

	query, args := scope.where(folderRowColumns, false, nil)
	rows, err := db.Query(ctx, r.db, query+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("list folder rows: %w", err)
	}
	return rows, nil
}

func (r *RowReader) GetFolder(ctx context.Context, scope Scope, id int) (db.Row, error) {
	defer observe("raw_find", "folders", time.Now())

	query, args := scope.where(folderRowColumns+" WHERE id = ?", true, []interface{}{id})
	return r.one(ctx, "folder", query, args)
}

func (r *RowReader) ListFolderNotes(ctx context.Context, scope Scope, folderID int) ([]db.Row, error) {
	defer observe("raw_list", "notes", time.Now())

	query, args := scope.where(noteRowColumns+" WHERE folder_id = ?", true, []interface{}{folderID})
	rows, err := db.Query(ctx, r.db, query+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("list notes of folder %d: %w", folderID, err)
	}
	return rows, nil
}

func (r *RowReader) GetNote(ctx context.Context, scope Scope, id int) (db.Row, error) {
	defer observe("raw_find", "notes", time.Now())

	query, args := scope.where(noteRowColumns+" WHERE id = ?", true, []interface{}{id})
	return r.one(ctx, "note", query, args)
}

func (r *RowReader) one(ctx context.Context, entity, query string, args []interface{}) (db.Row, error) {
	rows, err := db.Query(ctx, r.db, query, args...)
	if err != nil {
		return db.Row{}, fmt.Errorf("get %s row: %w", entity, err)
	}
	if len(rows) == 0 {
		return db.Row{}, apperr.ErrNotFound
	}
	return rows[0], nil
}
