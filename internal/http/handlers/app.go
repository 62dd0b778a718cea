package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"donorbook/internal/domain"
	"donorbook/internal/export"
	"donorbook/internal/infra"
	"donorbook/internal/service"
)

const maxBodyBytes = 1 << 20

type App struct {
	Donors     *service.DonorService
	Payments   *service.PaymentService
	Expenses   *service.ExpenseService
	Stats      *service.StatsService
	Auth       *service.AuthService
	Exports    *export.Builder
	Logger     infra.Logger
	JWTSecret  string
	SessionTTL time.Duration
	Now        func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// fail maps a service error onto the error envelope. Only domain errors
// expose their message; anything else is logged and reported as internal.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		a.log(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	switch de.Kind {
	case domain.KindInvalid:
		a.error(w, http.StatusBadRequest, "bad_request", de.Message)
	case domain.KindNotFound:
		a.error(w, http.StatusNotFound, "not_found", de.Message)
	case domain.KindConflict:
		a.error(w, http.StatusConflict, "conflict", de.Message)
	case domain.KindUnauthorized:
		a.error(w, http.StatusUnauthorized, "unauthorized", de.Message)
	default:
		a.error(w, http.StatusInternalServerError, "internal", de.Message)
	}
}

// log prefers the request-scoped logger installed by the access log middleware.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

// decode reads a JSON body into v, reporting a 400 on malformed input.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}
