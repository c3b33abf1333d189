package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Navaneeth2707/Remindiary/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)

	// Entry routes: classification of raw text + read-only queries
	r.Post("/api/entries", handlers.CreateEntry)
	r.Get("/api/entries", handlers.GetEntries)
	r.Get("/api/entries/date", handlers.GetEntriesByDate)

	// Diary routes: day aggregation + lookup
	r.Post("/api/diary/generate", handlers.GenerateDiary)
	r.Get("/api/diary", handlers.GetDiary)
}
