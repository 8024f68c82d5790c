package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/todo-be/internal/api/handlers"
	"github.com/isdelr/todo-be/internal/auth"
	"github.com/isdelr/todo-be/internal/services"
)

// Dependencies bundles everything the router needs.
type Dependencies struct {
	DB             handlers.Pinger
	Tokens         *auth.TokenIssuer
	Users          services.UserServiceProvider
	Todos          services.TodoServiceProvider
	Categories     services.CategoryServiceProvider
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB)
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens)
	todoHandler := handlers.NewTodoHandler(deps.Todos)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Everything below requires a bearer token
	r.Group(func(r chi.Router) {
		r.Use(deps.Tokens.Middleware())

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.GetAll)
			r.Post("/", todoHandler.Create)
			r.Put("/{id}", todoHandler.Toggle)
			r.Delete("/{id}", todoHandler.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetAll)
			r.Post("/", categoryHandler.Create)
			r.Delete("/{name}", categoryHandler.Delete)
		})
	})

	return r
}
