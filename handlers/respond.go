package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"notes-hub/apperr"
	"notes-hub/middleware"
	"notes-hub/store"
	"notes-hub/validation"
)

var errInvalidBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError is the single place errors become HTTP responses. Unknown
// errors are logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := apperr.IsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, errInvalidBody):
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, apperr.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, apperr.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, apperr.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// pathID reads the {id} URL parameter. Anything that is not a positive
// integer cannot name a row and is reported as not found.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, apperr.ErrNotFound
	}
	return id, nil
}

// caller resolves the identity placed in the context by RequireAuth.
func caller(r *http.Request) (middleware.Identity, store.Scope, error) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return id, store.Scope{}, apperr.ErrUnauthenticated
	}
	return id, store.ScopeFor(id.UserID, id.IsSuperuser), nil
}

// fieldErrors validates v and adds the fields a patch sent as null.
func fieldErrors(v interface{}, nulls map[string]string) (map[string]string, error) {
	fields := map[string]string{}

	err := validation.Struct(v)
	if ve, ok := apperr.IsValidation(err); ok {
		for k, msg := range ve.Fields {
			fields[k] = msg
		}
	} else if err != nil {
		return nil, err
	}

	for k, msg := range nulls {
		fields[k] = msg
	}
	return fields, nil
}

func check(v interface{}, nulls map[string]string) error {
	fields, err := fieldErrors(v, nulls)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}
