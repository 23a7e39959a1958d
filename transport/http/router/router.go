package router

import (
	"net/http"

	"hotel/config"
	_ "hotel/docs" // registers the swagger document
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/room"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	healthPath  = "/healthz"
	swaggerPath = "/swagger/*"
)

type DomainHandlers struct {
	Room    room.Handler
	Booking booking.Handler
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
}

// SetupRoutes mounts the probes, the docs and the v1 api on router. Probes and
// metrics stay outside the rate limiter.
func (r *Router) SetupRoutes(router chi.Router, ready middleware.ReadinessFunc) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.Middleware.CORS())

	router.Get(healthPath, func(w http.ResponseWriter, _ *http.Request) {
		if !ready() {
			response.WithUnhealthy(w)

			return
		}

		response.WithMessage(w, http.StatusOK, "OK")
	})

	if r.Config.Metrics.Enable {
		router.Handle(r.Config.Metrics.Path, promhttp.Handler())
	}

	router.Get(swaggerPath, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Middleware.Readiness(ready))
		routerGroup.Use(r.Middleware.Metrics)
		routerGroup.Use(r.Middleware.Tracing)
		routerGroup.Use(r.Middleware.RateLimit())
		routerGroup.Use(r.Middleware.Actor)

		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(config *config.Config, domainHandlers DomainHandlers, middleware middleware.AppMiddleware) Router {
	return Router{
		Config:         config,
		DomainHandlers: domainHandlers,
		Middleware:     middleware,
	}
}
