package handlers

import (
	"net/http"

	"notes-hub/models"
)

func (a *NotesAPI) ListFolders(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := a.Rows.ListFolders(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *NotesAPI) CreateFolder(w http.ResponseWriter, r *http.Request) {
	id, _, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.FolderPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	folder := models.Folder{UserID: id.UserID}
	patch.Apply(&folder)
	if err := check(folder, patch.Nulls()); err != nil {
		writeError(w, r, err)
		return
	}

	if err := a.Folders.Insert(r.Context(), &folder); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (a *NotesAPI) GetFolder(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	folderID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	row, err := a.Rows.GetFolder(r.Context(), scope, folderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *NotesAPI) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	folderID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	folder, err := a.Folders.Find(r.Context(), scope, folderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.FolderPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	patch.Apply(folder)
	if err := check(folder, patch.Nulls()); err != nil {
		writeError(w, r, err)
		return
	}

	if err := a.Folders.Update(r.Context(), scope, folder); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (a *NotesAPI) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	folderID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := a.Folders.Delete(r.Context(), scope, folderID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFolderNotes returns the folder's notes next to a summary of the
// folder itself.
func (a *NotesAPI) ListFolderNotes(w http.ResponseWriter, r *http.Request) {
	_, scope, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	folderID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	folder, err := a.Rows.GetFolder(r.Context(), scope, folderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	notes, err := a.Rows.ListFolderNotes(r.Context(), scope, folderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.FolderNotes{
		Notes:  notes,
		Folder: folder.Pick("name", "created_at", "updated_at"),
	})
}
