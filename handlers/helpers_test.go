package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"notes-hub/middleware"
	"notes-hub/models"
)

var testSecret = []byte("handler-test-secret")

func newNotesServer() (*memDB, *NotesAPI, http.Handler) {
	mem := newMemDB()
	api := &NotesAPI{
		Users:      memUsers{mem},
		Folders:    memFolders{mem},
		Notes:      memNotes{mem},
		Rows:       memRows{mem},
		DB:         mem,
		Secret:     testSecret,
		AccessTTL:  time.Hour,
		RefreshTTL: 2 * time.Hour,
		Log:        zerolog.Nop(),
	}
	return mem, api, api.Routes()
}

func newCompanyServer() (*memDB, http.Handler) {
	mem := newMemDB()
	api := &CompanyAPI{Companies: memCompanies{mem}, DB: mem, Log: zerolog.Nop()}
	return mem, api.Routes()
}

func bearer(t *testing.T, userID int, superuser bool) string {
	t.Helper()
	token, err := middleware.NewToken(testSecret, userID, superuser, middleware.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func encode(body interface{}) *bytes.Buffer {
	switch b := body.(type) {
	case nil:
		return &bytes.Buffer{}
	case string:
		return bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		return bytes.NewBuffer(raw)
	}
}

// as sends a request through the full router authenticated as userID.
// userID 0 sends no Authorization header.
func as(t *testing.T, h http.Handler, userID int, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, encode(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", bearer(t, userID, false))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func asSuperuser(t *testing.T, h http.Handler, userID int, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, encode(body))
	req.Header.Set("Authorization", bearer(t, userID, true))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func anon(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, encode(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode object %q: %v", rr.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list %q: %v", rr.Body.String(), err)
	}
	return out
}

func seedFolder(t *testing.T, mem *memDB, owner int, name string) models.Folder {
	t.Helper()
	f := models.Folder{UserID: owner, Name: name}
	if err := (memFolders{mem}).Insert(context.Background(), &f); err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	return f
}

func seedNote(t *testing.T, mem *memDB, owner int, folder *int, title string) models.Note {
	t.Helper()
	n := models.Note{UserID: owner, FolderID: folder, Title: title, Content: title + " body"}
	if err := (memNotes{mem}).Insert(context.Background(), &n); err != nil {
		t.Fatalf("seed note: %v", err)
	}
	return n
}
