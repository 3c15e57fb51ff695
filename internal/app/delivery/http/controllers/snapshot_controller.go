package controllers

import (
	"context"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type SnapshotController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	InternalConfig      *config.InternalConfig
}

func NewSnapshotController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, internalConfig *config.InternalConfig) *SnapshotController {
	return &SnapshotController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		InternalConfig:      internalConfig,
	}
}

// PublishSnapshot runs the snapshot job on demand. It shares the leader lock
// with the scheduled worker, so a concurrent run answers 503.
func (ctrl *SnapshotController) PublishSnapshot(w http.ResponseWriter, r *http.Request) {
	ctrl.Log.Info("SnapshotController.PublishSnapshot called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
	)

	timeout := ctrl.InternalConfig.SnapshotTimeout()
	if timeout <= 0 {
		timeout = requestTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.PublishSnapshot(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PublishSnapshotSuccessMessage, result)
}
