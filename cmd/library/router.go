// cmd/library/router.go
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spoorthi225f2/Library/internal/accounts"
	"github.com/spoorthi225f2/Library/internal/catalog"
	"github.com/spoorthi225f2/Library/internal/lending"
	"github.com/spoorthi225f2/Library/internal/platform/auth"
)

type routerDeps struct {
	accounts *accounts.Handler
	catalog  *catalog.Handler
	lending  *lending.Handler
	secret   []byte
	logger   *slog.Logger
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.logger))
	r.Use(middleware.Recoverer)

	r.Post("/register", deps.accounts.HandleRegister)
	r.Post("/login", deps.accounts.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(deps.secret))

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", deps.catalog.HandleDashboard)
			r.Get("/books", deps.catalog.HandleList)
			r.Post("/books", deps.catalog.HandleCreate)
			r.Put("/books/{bookID}", deps.catalog.HandleUpdate)
			r.Delete("/books/{bookID}", deps.catalog.HandleDelete)
		})

		r.Route("/member", func(r chi.Router) {
			r.Get("/dashboard", deps.lending.HandleDashboard)
			r.Get("/books", deps.lending.HandleBooks)
			r.Get("/history", deps.lending.HandleHistory)
			r.Post("/borrow/{bookID}", deps.lending.HandleBorrow)
			r.Post("/return/{bookID}", deps.lending.HandleReturn)
		})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
