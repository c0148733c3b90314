package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/KingCuz/GrindLink/internal/api/handlers"
	"github.com/KingCuz/GrindLink/internal/services"
	"github.com/KingCuz/GrindLink/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	assignmentService services.AssignmentServiceProvider,
	profileService services.ProfileServiceProvider,
	allowedOrigin string,
	staticDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	userHandler := handlers.NewUserHandler(profileService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// WebSocket connection endpoint
	r.Get("/ws", wsHandler.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Route("/assignments", func(r chi.Router) {
			r.Post("/", assignmentHandler.Create)
			r.Get("/", assignmentHandler.List)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
		})
	})

	// Static assets with an index.html fallback for any unmatched path.
	if staticDir != "" {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
			path := filepath.Join(staticDir, filepath.Clean("/"+req.URL.Path))
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, req)
				return
			}
			if strings.HasPrefix(req.URL.Path, "/api/") {
				http.NotFound(w, req)
				return
			}
			http.ServeFile(w, req, filepath.Join(staticDir, "index.html"))
		})
	}

	return r
}
