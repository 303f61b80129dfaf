package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"notes-hub/apperr"
	"notes-hub/db"
	"notes-hub/models"
	"notes-hub/store"
)

// memDB mirrors the MySQL schema rules the handlers rely on: owner
// filtering, SET NULL on folder delete and server-side timestamps.
type memDB struct {
	mu        sync.Mutex
	seq       int
	users     map[int]models.User
	folders   map[int]models.Folder
	notes     map[int]models.Note
	companies map[int]models.Company
	failWith  error
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[int]models.User{},
		folders:   map[int]models.Folder{},
		notes:     map[int]models.Note{},
		companies: map[int]models.Company{},
	}
}

func (m *memDB) nextID() int {
	m.seq++
	return m.seq
}

func visible(scope store.Scope, owner int) bool {
	return scope.All || scope.UserID == owner
}

func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (m *memDB) PingContext(ctx context.Context) error {
	return m.failWith
}

type memUsers struct{ *memDB }

func (m memUsers) Create(ctx context.Context, email, hash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, store.ErrUserExists
		}
	}
	u := models.User{ID: m.nextID(), Email: email, PasswordHash: hash, CreatedAt: stamp()}
	m.users[u.ID] = u
	return &u, nil
}

func (m memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m memUsers) FindByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

type memFolders struct{ *memDB }

func (m memFolders) list(scope store.Scope) []models.Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Folder{}
	for _, f := range m.folders {
		if visible(scope, f.UserID) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memFolders) Find(ctx context.Context, scope store.Scope, id int) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	f, ok := m.folders[id]
	if !ok || !visible(scope, f.UserID) {
		return nil, apperr.ErrNotFound
	}
	return &f, nil
}

func (m memFolders) Insert(ctx context.Context, f *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	f.ID = m.nextID()
	f.CreatedAt = stamp()
	f.UpdatedAt = f.CreatedAt
	m.folders[f.ID] = *f
	return nil
}

func (m memFolders) Update(ctx context.Context, scope store.Scope, f *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.folders[f.ID]
	if !ok || !visible(scope, prev.UserID) {
		return nil
	}
	f.UpdatedAt = stamp()
	prev.Name = f.Name
	prev.UpdatedAt = f.UpdatedAt
	m.folders[f.ID] = prev
	return nil
}

func (m memFolders) Delete(ctx context.Context, scope store.Scope, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok || !visible(scope, f.UserID) {
		return apperr.ErrNotFound
	}
	delete(m.folders, id)
	for nid, n := range m.notes {
		if n.FolderID != nil && *n.FolderID == id {
			n.FolderID = nil
			m.notes[nid] = n
		}
	}
	return nil
}

type memNotes struct{ *memDB }

func (m memNotes) List(ctx context.Context, scope store.Scope) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []models.Note{}
	for _, n := range m.notes {
		if visible(scope, n.UserID) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memNotes) Find(ctx context.Context, scope store.Scope, id int) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok || !visible(scope, n.UserID) {
		return nil, apperr.ErrNotFound
	}
	if n.FolderID != nil {
		fid := *n.FolderID
		n.FolderID = &fid
	}
	return &n, nil
}

func (m memNotes) Insert(ctx context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.FolderID != nil {
		if _, ok := m.folders[*n.FolderID]; !ok {
			return errors.New("foreign key constraint fails")
		}
	}
	n.ID = m.nextID()
	n.CreatedAt = stamp()
	n.UpdatedAt = n.CreatedAt
	m.notes[n.ID] = *n
	return nil
}

func (m memNotes) Update(ctx context.Context, scope store.Scope, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.notes[n.ID]
	if !ok || !visible(scope, prev.UserID) {
		return nil
	}
	n.UpdatedAt = stamp()
	prev.FolderID = n.FolderID
	prev.Title = n.Title
	prev.Content = n.Content
	prev.UpdatedAt = n.UpdatedAt
	m.notes[n.ID] = prev
	return nil
}

func (m memNotes) Delete(ctx context.Context, scope store.Scope, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok || !visible(scope, n.UserID) {
		return apperr.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

type memRows struct{ *memDB }

func folderRow(f models.Folder) db.Row {
	return db.Row{
		Columns: []string{"id", "user", "name", "created_at", "updated_at"},
		Values:  []interface{}{f.ID, f.UserID, f.Name, f.CreatedAt, f.UpdatedAt},
	}
}

func noteRow(n models.Note) db.Row {
	var folder interface{}
	if n.FolderID != nil {
		folder = *n.FolderID
	}
	return db.Row{
		Columns: []string{"id", "user", "folder", "title", "content", "created_at", "updated_at"},
		Values:  []interface{}{n.ID, n.UserID, folder, n.Title, n.Content, n.CreatedAt, n.UpdatedAt},
	}
}

func (m memRows) ListFolders(ctx context.Context, scope store.Scope) ([]db.Row, error) {
	folders := memFolders(m).list(scope)
	rows := []db.Row{}
	for _, f := range folders {
		rows = append(rows, folderRow(f))
	}
	return rows, nil
}

func (m memRows) GetFolder(ctx context.Context, scope store.Scope, id int) (db.Row, error) {
	f, err := memFolders(m).Find(ctx, scope, id)
	if err != nil {
		return db.Row{}, err
	}
	return folderRow(*f), nil
}

func (m memRows) ListFolderNotes(ctx context.Context, scope store.Scope, folderID int) ([]db.Row, error) {
	notes, _ := memNotes(m).List(ctx, scope)
	rows := []db.Row{}
	for _, n := range notes {
		if n.FolderID != nil && *n.FolderID == folderID {
			rows = append(rows, noteRow(n))
		}
	}
	return rows, nil
}

func (m memRows) GetNote(ctx context.Context, scope store.Scope, id int) (db.Row, error) {
	n, err := memNotes(m).Find(ctx, scope, id)
	if err != nil {
		return db.Row{}, err
	}
	return noteRow(*n), nil
}

type memCompanies struct{ *memDB }

func (m memCompanies) List(ctx context.Context) ([]models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Company{}
	for _, c := range m.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memCompanies) Find(ctx context.Context, id int) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &c, nil
}

func (m memCompanies) Insert(ctx context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID()
	c.AddedDate = stamp()
	m.companies[c.ID] = *c
	return nil
}

func (m memCompanies) Update(ctx context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.AddedDate = stamp()
	m.companies[c.ID] = *c
	return nil
}

func (m memCompanies) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.companies, id)
	return nil
}
