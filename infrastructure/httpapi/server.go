// Package httpapi exposes the chat core over REST. Handlers stay thin:
// they translate requests into service calls and map sentinel errors to
// status codes.
package httpapi

import (
	"batepapo/services"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	log      *slog.Logger
	registry *services.RegistryService
	messages *services.MessageService
	router   chi.Router
}

func NewServer(
	log *slog.Logger,
	registry *services.RegistryService,
	messages *services.MessageService,
	allowedOrigins []string,
) *Server {
	s := &Server{
		log:      log,
		registry: registry,
		messages: messages,
		router:   chi.NewRouter(),
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", identityHeader},
	}))
	s.router.Use(s.requestLogger)

	s.router.Route("/participants", func(r chi.Router) {
		r.Post("/", s.registerParticipant)
		r.Get("/", s.listParticipants)
	})
	s.router.Route("/messages", func(r chi.Router) {
		r.Post("/", s.sendMessage)
		r.Get("/", s.listMessages)
		r.Put("/{messageID}", s.editMessage)
		r.Delete("/{messageID}", s.deleteMessage)
	})
	s.router.Post("/status", s.heartbeat)
	s.router.Get("/health", s.health)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
