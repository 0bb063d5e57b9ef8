package web

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/api/v1/health", s.healthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Users
		r.Get("/users", s.listUsers)
		r.Delete("/users", s.clearUsers)
		r.Delete("/users/{id}", s.removeUser)

		// Extraction sessions
		r.Post("/enroll", s.enroll)
		r.Post("/authenticate", s.authenticate)
	})
}
