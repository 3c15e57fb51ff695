package routers

import (
	"medirdv-service/internal/app/delivery/http/controllers"
	"medirdv-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachHookRoutes(router chi.Router, middlewares *middlewares.Middlewares, webhookController *controllers.WebhookController) {
	router.With(middlewares.RequireHookToken).Post("/working-hours", webhookController.WorkingHoursChanged)
}
