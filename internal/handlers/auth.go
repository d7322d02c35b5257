package handlers

import (
	"log/slog"
	"net/http"

	"infogen/internal/middleware"
	"infogen/internal/models"
	"infogen/internal/session"
)

// Auth exchanges bearer tokens for cookie sessions.
type Auth struct {
	sessions *session.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store) *Auth {
	return &Auth{sessions: sessions}
}

type sessionResponse struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	ImageURL  string `json:"imageUrl"`
	CSRFToken string `json:"csrfToken"`
}

// CreateSession opens a session for the bearer-authenticated caller and
// sets the session cookie. The CSRF token is returned so browser clients
// can echo it on later cookie-authenticated writes.
func (a *Auth) CreateSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		writeError(w, r, models.ErrUnauthenticated)
		return
	}

	data := *user
	if _, err := a.sessions.Create(r.Context(), w, &data); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("session opened", "user_id", data.UserID)
	writeJSON(w, http.StatusCreated, sessionResponse{
		UserID:    data.UserID,
		Email:     data.Email,
		ImageURL:  data.ImageURL,
		CSRFToken: middleware.CSRFToken(r),
	})
}

// DestroySession ends the cookie session, if any.
func (a *Auth) DestroySession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated caller.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		writeError(w, r, models.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		ImageURL:  user.ImageURL,
		CSRFToken: middleware.CSRFToken(r),
	})
}
