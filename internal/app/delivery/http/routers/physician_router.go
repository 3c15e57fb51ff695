package routers

import (
	"medirdv-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPhysicianRoutes(router chi.Router, availabilityController *controllers.AvailabilityController) {
	router.Get("/availability", availabilityController.FindPhysiciansAvailability)
	router.Get("/{physician_id}/availability", availabilityController.FindPhysicianAvailability)
}
