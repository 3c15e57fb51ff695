package routers

import (
	"fmt"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/delivery/http/controllers"
	"medirdv-service/internal/app/delivery/http/middlewares"
	"medirdv-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	availabilityController *controllers.AvailabilityController,
	webhookController *controllers.WebhookController,
	snapshotController *controllers.SnapshotController,
	healthController *controllers.HealthController,
) {
	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging)
	router.Use(mw.ErrorHandler)

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.CORSAllowedOrigins(),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID, middlewares.HeaderAPIKey},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(mw.RateLimiter())
	router.Use(mw.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/health", healthController.Health)

			r.Route("/physicians", func(r chi.Router) {
				attachPhysicianRoutes(r, availabilityController)
			})

			r.Route("/clinics", func(r chi.Router) {
				attachClinicRoutes(r, availabilityController)
			})

			r.Route("/availability", func(r chi.Router) {
				attachAvailabilityRoutes(r, mw, availabilityController, snapshotController)
			})

			r.Route("/hooks", func(r chi.Router) {
				attachHookRoutes(r, mw, webhookController)
			})
		})
	})
}
