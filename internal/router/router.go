package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/budget-backend/internal/handlers"
	"github.com/GregMSThompson/budget-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	am := middleware.NewMiddleware(deps.Firebase)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	sph := handlers.NewSavingsPlanHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	cth := handlers.NewCategoryHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Mount("/savings-plans", sph.SavingsPlanRoutes())
		r.Mount("/transactions", txh.TransactionRoutes())
		r.Mount("/categories", cth.CategoryRoutes())
	})
	return r
}
