package controllers

import (
	"context"
	"errors"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/requests"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
	}
}

func (ctrl *AvailabilityController) FindPhysicianAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	physicianID := chi.URLParam(r, constvars.URLParamPhysicianID)

	if err := utils.ValidateURLParamID(physicianID); err != nil {
		ctrl.Log.Error("AvailabilityController.FindPhysicianAvailability invalid physician id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamPhysicianID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.FindPhysicianAvailability(ctx, physicianID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPhysicianAvailabilitySuccessMessage, result)
}

func (ctrl *AvailabilityController) FindClinicAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)

	if err := utils.ValidateURLParamID(clinicID); err != nil {
		ctrl.Log.Error("AvailabilityController.FindClinicAvailability invalid clinic id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamClinicID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.FindClinicAvailability(ctx, clinicID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetClinicAvailabilitySuccessMessage, result)
}

func (ctrl *AvailabilityController) FindPhysiciansAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	request := &requests.FindPhysiciansAvailability{IDs: utils.ParseIDsQuery(r)}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AvailabilityController.FindPhysiciansAvailability validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.FindPhysiciansAvailability(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPhysiciansAvailabilitySuccessMessage, result)
}

func (ctrl *AvailabilityController) ResolveSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.ResolveAvailability)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("AvailabilityController.ResolveSchedule error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AvailabilityController.ResolveSchedule validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.ResolveSchedule(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResolveAvailabilitySuccessMessage, result)
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
