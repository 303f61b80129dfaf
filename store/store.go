package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"notes-hub/db"
	"notes-hub/models"
)

var ErrUserExists = errors.New("user already exists")

var operationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_operation_duration_seconds",
		Help:    "Duration of database operations",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"operation", "table"},
)

func observe(operation, table string, start time.Time) {
	operationDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// Scope restricts which rows a caller may see or touch. All is set for
// superusers and bypasses the owner filter.
type Scope struct {
	UserID int
	All    bool
}

func ScopeFor(userID int, superuser bool) Scope {
	return Scope{UserID: userID, All: superuser}
}

// where appends the owner filter to a statement that already has a WHERE
// clause (or starts one when hasWhere is false).
func (s Scope) where(query string, hasWhere bool, args []interface{}) (string, []interface{}) {
	if s.All {
		return query, args
	}
	if hasWhere {
		return query + " AND user_id = ?", append(args, s.UserID)
	}
	return query + " WHERE user_id = ?", append(args, s.UserID)
}

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// FolderStore covers folder writes and the lookups they need. Folder
// listings are served by Reader.
type FolderStore interface {
	Find(ctx context.Context, scope Scope, id int) (*models.Folder, error)
	Insert(ctx context.Context, f *models.Folder) error
	Update(ctx context.Context, scope Scope, f *models.Folder) error
	Delete(ctx context.Context, scope Scope, id int) error
}

type NoteStore interface {
	List(ctx context.Context, scope Scope) ([]models.Note, error)
	Find(ctx context.Context, scope Scope, id int) (*models.Note, error)
	Insert(ctx context.Context, n *models.Note) error
	Update(ctx context.Context, scope Scope, n *models.Note) error
	Delete(ctx context.Context, scope Scope, id int) error
}

type CompanyStore interface {
	List(ctx context.Context) ([]models.Company, error)
	Find(ctx context.Context, id int) (*models.Company, error)
	Insert(ctx context.Context, c *models.Company) error
	Update(ctx context.Context, c *models.Company) error
	Delete(ctx context.Context, id int) error
}

// Reader is the read-only, row-shaped query path. Rows carry the same keys
// as the JSON encoding of the corresponding models.
type Reader interface {
	ListFolders(ctx context.Context, scope Scope) ([]db.Row, error)
	GetFolder(ctx context.Context, scope Scope, id int) (db.Row, error)
	ListFolderNotes(ctx context.Context, scope Scope, folderID int) ([]db.Row, error)
	GetNote(ctx context.Context, scope Scope, id int) (db.Row, error)
}

// execer covers the statements the MySQL stores issue.
type execer interface {
	db.Querier
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
