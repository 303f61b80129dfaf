package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"notes-hub/apperr"
	"notes-hub/models"
)

// MySQL error number for a unique-key violation.
const errDuplicateEntry = 1062

type Users struct {
	db execer
}

func NewUsers(conn *sql.DB) *Users {
	return &Users{db: conn}
}

func (s *Users) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	defer observe("insert", "users", time.Now())

	ts := now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)", email, passwordHash, ts)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &models.User{ID: int(id), Email: email, PasswordHash: passwordHash, CreatedAt: ts}, nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observe("find", "users", time.Now())
	return s.findOne(ctx, "email = ?", email)
}

func (s *Users) FindByID(ctx context.Context, id int) (*models.User, error) {
	defer observe("find", "users", time.Now())
	return s.findOne(ctx, "id = ?", id)
}

func (s *Users) findOne(ctx context.Context, cond string, arg interface{}) (*models.User, error) {
	var (
		u    models.User
		hash sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, is_superuser, created_at FROM users WHERE "+cond, arg).
		Scan(&u.ID, &u.Email, &hash, &u.IsSuperuser, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.PasswordHash = hash.String
	return &u, nil
}
