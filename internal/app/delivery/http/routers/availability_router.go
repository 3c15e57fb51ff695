package routers

import (
	"medirdv-service/internal/app/delivery/http/controllers"
	"medirdv-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController, snapshotController *controllers.SnapshotController) {
	router.Post("/resolve", availabilityController.ResolveSchedule)
	router.With(middlewares.RequireAdminAPIKey).Post("/snapshots", snapshotController.PublishSnapshot)
}
