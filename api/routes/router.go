package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vestiplan/vestiplan-backend/api/controllers"
	"github.com/vestiplan/vestiplan-backend/api/middleware"
	"github.com/vestiplan/vestiplan-backend/internal/analysis"
	"github.com/vestiplan/vestiplan-backend/internal/analytics"
	"github.com/vestiplan/vestiplan-backend/internal/articles"
	"github.com/vestiplan/vestiplan-backend/internal/suggestions"
	"github.com/vestiplan/vestiplan-backend/pkg/config"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
	"github.com/vestiplan/vestiplan-backend/pkg/metrics"
	pkgredis "github.com/vestiplan/vestiplan-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	idempotencyStore pkgredis.IdempotencyStore,
	rateLimiter middleware.WindowLimiter,
	registry *prometheus.Registry,
	articlesService articles.Service,
	suggestionsService suggestions.Service,
	analysisService analysis.Service,
	analyticsService analytics.Service,
) http.Handler {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/ping", controllers.PublicPing())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/articles", func(r chi.Router) {
			r.Post("/", controllers.CreateArticle(articlesService, logg))
			r.Get("/", controllers.ListArticles(articlesService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetArticle(articlesService, logg))
				r.Put("/", controllers.UpdateArticle(articlesService, logg))
				r.Delete("/", controllers.DeleteArticle(articlesService, logg))
				r.Post("/duplicate", controllers.DuplicateArticle(articlesService, logg))
				r.Post("/status", controllers.ChangeArticleStatus(articlesService, logg))
				r.Post("/schedule", controllers.ScheduleArticle(articlesService, logg))
				r.Post("/publish", controllers.PublishArticle(articlesService, logg))
				r.Post("/sold", controllers.MarkArticleSold(articlesService, logg))
			})
		})

		r.Route("/suggestions", func(r chi.Router) {
			r.Get("/", controllers.ListSuggestions(suggestionsService, logg))
			r.Post("/generate", controllers.GenerateSuggestions(suggestionsService, logg))
			r.Post("/{id}/accept", controllers.AcceptSuggestion(suggestionsService, logg))
			r.Post("/{id}/reject", controllers.RejectSuggestion(suggestionsService, logg))
		})

		analysisLimit := middleware.NewRateLimitPolicy("analysis", time.Hour, int64(cfg.OpenAI.RateLimitPerHour))
		r.With(middleware.RateLimit(analysisLimit, rateLimiter, logg)).
			Post("/analysis/image", controllers.AnalyzeImage(analysisService, logg))
		r.Get("/analytics/sales", controllers.SalesAnalytics(analyticsService, logg))
	})

	return r
}
