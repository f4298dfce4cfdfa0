package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Panel rekordów działa! Dokumentacja dostępna pod /swagger/index.html"))
	})
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/ws", s.ServeWsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)

			r.Post("/users", s.CreateUserHandler)
			r.Get("/users", s.ListUsersHandler)
			r.Get("/users/{userId}", s.GetUserHandler)
			r.Delete("/users/{userId}", s.DeleteUserHandler)

			r.Post("/files", s.CreateFileHandler)
			r.Get("/files", s.ListFilesHandler)
			r.Get("/files/{fileId}", s.GetFileHandler)
			r.Get("/files/{fileId}/content", s.DownloadFileHandler)
			r.Delete("/files/{fileId}", s.DeleteFileHandler)
		})
	})

	return r
}
