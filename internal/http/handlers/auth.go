package handlers

import (
	"net/http"
	"time"

	"donorbook/internal/domain"
	"donorbook/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *domain.StaffUser `json:"user"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username and password required")
		return
	}
	user, err := a.Auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	now := a.now()
	token, err := middleware.SignToken(a.JWTSecret, user.ID, user.Username, user.Name, a.SessionTTL, now)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.log(r).Info().Str("user_id", user.ID).Msg("staff login")
	a.json(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: now.Add(a.SessionTTL),
		User:      user,
	})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user")
		return
	}
	user, err := a.Auth.Me(r.Context(), userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, user)
}
