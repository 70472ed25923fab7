package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dpearce/inkwell/internal/config"
	"github.com/dpearce/inkwell/internal/db"
	"github.com/dpearce/inkwell/internal/handlers"
	"github.com/dpearce/inkwell/internal/middleware"
	"github.com/dpearce/inkwell/internal/repo"
	"github.com/dpearce/inkwell/internal/service"
	"github.com/dpearce/inkwell/internal/token"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	// Refuse to start in prod with the default signing key; rotating it
	// invalidates all outstanding tokens, but running without a real one
	// invalidates the whole design.
	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		slog.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		slog.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	r := newRouter(database, cfg)

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// newRouter wires repositories, services, handlers, and middleware into the
// full HTTP surface. Separated from main so integration tests can run the
// real router against a mock database.
func newRouter(database *sql.DB, cfg config.Config) chi.Router {
	tokens := token.NewService([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)

	authH := &handlers.AuthHandler{
		Auth: service.NewAuthService(repo.NewUserRepo(database), tokens),
	}
	postH := &handlers.PostHandler{
		Posts: service.NewPostService(repo.NewPostRepo(database)),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Posts are public to read; every mutation requires a verified identity.
	r.Get("/posts", postH.ListPosts)
	r.Get("/posts/{id}", postH.GetPost)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/auth/me", authH.Me)
		r.Post("/posts", postH.CreatePost)
		r.Patch("/posts/{id}", postH.UpdatePost)
		r.Delete("/posts/{id}", postH.DeletePost)
	})

	return r
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
