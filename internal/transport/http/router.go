package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-food-reviews/internal/service"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/handlers"
	"github.com/pribylovaa/go-food-reviews/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики/гистограммы по шаблону маршрута
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	// reviews
	r.Get("/reviews", h.ListReviews)
	r.Post("/reviews", h.CreateReview)
	r.Get("/reviews/{id}", h.GetReviewByID)
	r.Put("/reviews/{id}", h.UpdateReview)
	r.Delete("/reviews/{id}", h.DeleteReview)

	// comments — адресуются глобальным id, без родительского обзора
	r.Post("/reviews/{id}/comments", h.AddComment)
	r.Put("/comments/{id}", h.UpdateComment)
	r.Delete("/comments/{id}", h.DeleteComment)

	// auth
	r.Post("/users", h.RegisterUser)
	r.Post("/login", h.LoginUser)

	// защищённая группа
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(svc))
		pr.Get("/users/{id}", h.GetProfile)
	})
}
