package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"donorbook/internal/http/handlers"
	"donorbook/internal/middleware"
)

// Options tunes the router's cross-cutting middleware.
type Options struct {
	CORSOrigins     []string
	LoginRatePerMin int
}

const defaultLoginRate = 10

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.NoStore,
	)

	loginRate := opts.LoginRatePerMin
	if loginRate <= 0 {
		loginRate = defaultLoginRate
	}
	auth := middleware.AuthJWT(app.JWTSecret)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/v1/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(loginRate, time.Minute)).Post("/login", app.Login)
		r.With(auth).Get("/me", app.Me)
	})

	r.Route("/v1/donors", func(r chi.Router) {
		r.Get("/", app.ListDonors)
		r.Get("/{id}", app.GetDonor)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", app.CreateDonor)
			r.Post("/bulk", app.CreateDonorsBulk)
			r.Patch("/{id}", app.UpdateDonor)
			r.Delete("/{id}", app.DeleteDonor)
		})
	})

	r.Route("/v1/payments", func(r chi.Router) {
		r.Get("/", app.ListPayments)
		r.Get("/status", app.PaymentStatus)
		r.Get("/current-month", app.CurrentMonth)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", app.CreatePayment)
			r.Post("/generate", app.GeneratePayments)
			r.Patch("/{id}", app.UpdatePayment)
			r.Post("/{id}/paid", app.MarkPaymentPaid)
		})
	})

	r.Route("/v1/expenses", func(r chi.Router) {
		r.Get("/", app.ListExpenses)
		r.Get("/categories", app.ExpenseCategories)
		r.Get("/{id}", app.GetExpense)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", app.CreateExpense)
			r.Patch("/{id}", app.UpdateExpense)
			r.Delete("/{id}", app.DeleteExpense)
		})
	})

	r.Route("/v1/stats", func(r chi.Router) {
		r.Get("/monthly", app.MonthlyStats)
		r.Get("/all-time", app.AllTimeStats)
		r.Get("/last-payments", app.LastPayments)
		r.Get("/expenses", app.ExpenseTotal)
		r.Get("/payments", app.PaymentStats)
	})

	r.Get("/v1/exports/{month}", app.ExportMonth)

	return r
}
