package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"notes-hub/apperr"
	"notes-hub/models"
	"notes-hub/store"
)

func (a *NotesAPI) ListNotes(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	notes, err := a.Notes.List(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (a *NotesAPI) CreateNote(w http.ResponseWriter, r *http.Request) {
	id, _, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	note := models.Note{UserID: id.UserID}
	patch.Apply(&note)
	if err := a.validateNote(r.Context(), &note, patch.Nulls()); err != nil {
		writeError(w, r, err)
		return
	}

	if err := a.Notes.Insert(r.Context(), &note); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (a *NotesAPI) GetNote(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	noteID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	row, err := a.Rows.GetNote(r.Context(), scope, noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *NotesAPI) UpdateNote(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	noteID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	note, err := a.Notes.Find(r.Context(), scope, noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	patch.Apply(note)
	if err := a.validateNote(r.Context(), note, patch.Nulls()); err != nil {
		writeError(w, r, err)
		return
	}

	if err := a.Notes.Update(r.Context(), scope, note); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *NotesAPI) DeleteNote(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	noteID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := a.Notes.Delete(r.Context(), scope, noteID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateNote checks field constraints and that a referenced folder
// belongs to the note's owner. All field problems are reported together.
func (a *NotesAPI) validateNote(ctx context.Context, note *models.Note, nulls map[string]string) error {
	fields, err := fieldErrors(note, nulls)
	if err != nil {
		return err
	}

	if note.FolderID != nil {
		_, err := a.Folders.Find(ctx, store.ScopeFor(note.UserID, false), *note.FolderID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			fields["folder"] = fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *note.FolderID)
		case err != nil:
			return err
		}
	}

	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}
