package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"donorbook/internal/domain"
	"donorbook/internal/export"
)

// ExportMonth streams the month archive as a zip download.
func (a *App) ExportMonth(w http.ResponseWriter, r *http.Request) {
	month, err := domain.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	data, err := a.Exports.Month(r.Context(), month)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(month)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
