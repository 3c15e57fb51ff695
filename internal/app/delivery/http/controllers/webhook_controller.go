package controllers

import (
	"context"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/app/services/shared/ratelimiter"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/requests"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type WebhookController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	Quota               *ratelimiter.HookQuota
}

func NewWebhookController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, quota *ratelimiter.HookQuota) *WebhookController {
	return &WebhookController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		Quota:               quota,
	}
}

// WorkingHoursChanged handles POST /hooks/working-hours sent by the directory backend.
func (ctrl *WebhookController) WorkingHoursChanged(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	issuer, _ := r.Context().Value(constvars.CONTEXT_HOOK_ISSUER_KEY).(string)
	ctrl.Log.Info("WebhookController.WorkingHoursChanged called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIssuerKey, issuer),
	)

	if !ctrl.allowHook(w, r, issuer) {
		return
	}

	request := new(requests.WorkingHoursChanged)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("WebhookController.WorkingHoursChanged error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("WebhookController.WorkingHoursChanged validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.HandleWorkingHoursChanged(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WorkingHoursChangedSuccessMessage, result)
}

// allowHook applies the per-issuer quota shared by all instances. A redis
// outage lets the hook through.
func (ctrl *WebhookController) allowHook(w http.ResponseWriter, r *http.Request, issuer string) bool {
	if ctrl.Quota == nil {
		return true
	}

	decision, err := ctrl.Quota.Take(r.Context(), issuer)
	if err != nil {
		ctrl.Log.Warn("WebhookController.allowHook quota unavailable",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return true
	}
	if !decision.Allowed() {
		w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(decision.RetryAfterSeconds()))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTooManyRequests(nil))
		return false
	}
	return true
}
