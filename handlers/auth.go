package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"notes-hub/apperr"
	"notes-hub/middleware"
	"notes-hub/models"
	"notes-hub/store"
	"notes-hub/validation"
)

type authRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type tokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *NotesAPI) Register(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := a.Users.Create(r.Context(), req.Email, string(hash))
	if errors.Is(err, store.ErrUserExists) {
		writeMessage(w, http.StatusBadRequest, "User exists")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int("user_id", user.ID).Msg("user registered")
	writeJSON(w, http.StatusCreated, user)
}

func (a *NotesAPI) Login(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := a.Users.FindByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		writeError(w, r, err)
		return
	}
	if err != nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	a.issueTokens(w, r, user)
}

func (a *NotesAPI) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	claims, err := middleware.ParseToken(a.Secret, req.RefreshToken, middleware.RefreshToken)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Reload so a revoked superuser flag or deleted account takes effect.
	user, err := a.Users.FindByID(r.Context(), claims.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	a.issueTokens(w, r, user)
}

func (a *NotesAPI) issueTokens(w http.ResponseWriter, r *http.Request, user *models.User) {
	access, err := middleware.NewToken(a.Secret, user.ID, user.IsSuperuser, middleware.AccessToken, a.AccessTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refresh, err := middleware.NewToken(a.Secret, user.ID, user.IsSuperuser, middleware.RefreshToken, a.RefreshTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenPair{Token: access, RefreshToken: refresh})
}
