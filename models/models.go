package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
}

type Folder struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user"`
	Name      string    `json:"name" validate:"required,notblank,max=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Note struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user"`
	FolderID  *int      `json:"folder"`
	Title     string    `json:"title" validate:"required,notblank,max=100"`
	Content   string    `json:"content" validate:"required,notblank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderNotes is the composite body of GET /folders/{id}/notes/.
type FolderNotes struct {
	Notes  interface{} `json:"notes_data"`
	Folder interface{} `json:"folder_data"`
}

// FolderPatch holds the client-settable folder fields.
type FolderPatch struct {
	Name Optional[string] `json:"name"`
}

func (p FolderPatch) Apply(f *Folder) {
	p.Name.apply(&f.Name)
}

func (p FolderPatch) Nulls() map[string]string {
	return nulls(map[string]bool{"name": p.Name.Null})
}

type NotePatch struct {
	Folder  OptionalID       `json:"folder"`
	Title   Optional[string] `json:"title"`
	Content Optional[string] `json:"content"`
}

func (p NotePatch) Apply(n *Note) {
	if p.Folder.Set {
		n.FolderID = p.Folder.Value
	}
	p.Title.apply(&n.Title)
	p.Content.apply(&n.Content)
}

func (p NotePatch) Nulls() map[string]string {
	return nulls(map[string]bool{"title": p.Title.Null, "content": p.Content.Null})
}

// Optional is a patch field for a non-nullable column. Set reports that the
// key was present, Null that it was sent as JSON null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) apply(dst *T) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}

// NullMessage is reported for keys sent as null on non-nullable fields.
const NullMessage = "This field may not be null."

func nulls(flags map[string]bool) map[string]string {
	out := map[string]string{}
	for field, null := range flags {
		if null {
			out[field] = NullMessage
		}
	}
	return out
}

// OptionalID distinguishes an absent key from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
