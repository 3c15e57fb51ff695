package routers

import (
	"medirdv-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachClinicRoutes(router chi.Router, availabilityController *controllers.AvailabilityController) {
	router.Get("/{clinic_id}/availability", availabilityController.FindClinicAvailability)
}
