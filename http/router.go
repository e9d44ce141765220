package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Tax         *TaxHandler
	Comparison  *ComparisonHandler
	Filing      *FilingHandler
	Salary      *SalaryHandler
	Auth        *AuthHandler
	RateLimiter *RateLimiter
	Logger      zerolog.Logger
}

// NewRouter wires every route. Calculation and auth routes share the rate
// limiter; read-only routes are not limited.
func NewRouter(deps Dependencies) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/tax", func(r chi.Router) {
		r.Get("/rules", deps.Tax.ListRules)
		r.Get("/history", deps.Tax.History)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(deps.RateLimiter))
			r.Post("/calculate", deps.Tax.CalculateTax)
			r.Post("/compare", deps.Comparison.CompareRegimes)
			r.Post("/words", deps.Tax.AmountInWords)
			r.Post("/filing", deps.Filing.PrepareFiling)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(deps.RateLimiter))
		r.Post("/salary/statement", deps.Salary.Statement)
		if deps.Auth != nil {
			r.Post("/auth/signup", deps.Auth.SignUp)
			r.Post("/auth/login", deps.Auth.Login)
		}
	})

	return router
}
