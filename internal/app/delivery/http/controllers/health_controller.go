package controllers

import (
	"context"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	healthStatusUp       = "up"
	healthStatusDegraded = "degraded"
)

type HealthController struct {
	Log             *zap.Logger
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewHealthController(logger *zap.Logger, redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{
		Log:             logger,
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}

// Health always answers 200. A failing redis only degrades the service since
// the schedule cache is optional.
func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	status := healthStatusUp
	if ctrl.RedisRepository != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ctrl.RedisRepository.Ping(ctx); err != nil {
			ctrl.Log.Warn("HealthController.Health redis ping failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			status = healthStatusDegraded
		}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthCheck{
		Status:  status,
		Version: ctrl.InternalConfig.App.Version,
	})
}
