package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/delivery/http/controllers"
	"medirdv-service/internal/app/delivery/http/middlewares"
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/requests"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) FindPhysicianAvailability(ctx context.Context, physicianID string) (*responses.Availability, error) {
	args := m.Called(ctx, physicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Availability), args.Error(1)
}

func (m *MockAvailabilityUsecase) FindClinicAvailability(ctx context.Context, clinicID string) (*responses.Availability, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Availability), args.Error(1)
}

func (m *MockAvailabilityUsecase) FindPhysiciansAvailability(ctx context.Context, request *requests.FindPhysiciansAvailability) (*responses.BatchAvailability, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BatchAvailability), args.Error(1)
}

func (m *MockAvailabilityUsecase) ResolveSchedule(ctx context.Context, request *requests.ResolveAvailability) (*responses.ResolvedSchedule, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.ResolvedSchedule), args.Error(1)
}

func (m *MockAvailabilityUsecase) HandleWorkingHoursChanged(ctx context.Context, request *requests.WorkingHoursChanged) (*responses.Availability, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Availability), args.Error(1)
}

func (m *MockAvailabilityUsecase) BuildSnapshot(ctx context.Context) (*responses.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Snapshot), args.Error(1)
}

func (m *MockAvailabilityUsecase) PublishSnapshot(ctx context.Context) (*responses.SnapshotPublished, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.SnapshotPublished), args.Error(1)
}

const (
	testAPIKey     = "router-test-api-key"
	testHookSecret = "router-test-hook-secret"
)

func setupTestRouter(t *testing.T, usecase *MockAvailabilityUsecase) *chi.Mux {
	t.Helper()
	hash, err := utils.HashAPIKey(testAPIKey)
	require.NoError(t, err)

	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                   "v1",
			EndpointPrefix:            "api",
			MaxRequests:               1000,
			MaxTimeRequestsPerSeconds: 1,
			AdminAPIKeyHash:           hash,
			CORSAllowedOrigins:        "https://*",
			SnapshotTimeoutInSeconds:  30,
		},
		Backend: config.AppBackend{HookSecret: testHookSecret},
	}
	logger := zap.NewNop()

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewAvailabilityController(logger, usecase),
		controllers.NewWebhookController(logger, usecase, nil),
		controllers.NewSnapshotController(logger, usecase, internalConfig),
		controllers.NewHealthController(logger, nil, internalConfig),
	)
	return router
}

func TestSetupRoutes(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		router := setupTestRouter(t, new(MockAvailabilityUsecase))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Physician Availability", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("FindPhysicianAvailability", mock.Anything, "42").
			Return(&responses.Availability{SubjectID: "42", Status: availability.Available("18:00")}, nil)
		router := setupTestRouter(t, usecase)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/physicians/42/availability", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("Batch Route Is Not Taken As An ID", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("FindPhysiciansAvailability", mock.Anything, &requests.FindPhysiciansAvailability{IDs: []string{"1", "2"}}).
			Return(&responses.BatchAvailability{}, nil)
		router := setupTestRouter(t, usecase)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/physicians/availability?ids=1,2", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("Clinic Availability", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("FindClinicAvailability", mock.Anything, "3").
			Return(&responses.Availability{SubjectID: "3", Status: availability.Unavailable(availability.ReasonFullyClosed)}, nil)
		router := setupTestRouter(t, usecase)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/clinics/3/availability", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Resolve Is Public", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("ResolveSchedule", mock.Anything, mock.Anything).
			Return(&responses.ResolvedSchedule{Status: availability.Unavailable(availability.ReasonNoSchedule)}, nil)
		router := setupTestRouter(t, usecase)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/availability/resolve", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Snapshot Requires API Key", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("PublishSnapshot", mock.Anything).Return(&responses.SnapshotPublished{ObjectName: "a.json"}, nil)
		router := setupTestRouter(t, usecase)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/availability/snapshots", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/snapshots", nil)
		req.Header.Set(middlewares.HeaderAPIKey, testAPIKey)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Code)
		usecase.AssertNumberOfCalls(t, "PublishSnapshot", 1)
	})

	t.Run("Hook Requires Token", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("HandleWorkingHoursChanged", mock.Anything, mock.Anything).
			Return(&responses.Availability{SubjectID: "7"}, nil)
		router := setupTestRouter(t, usecase)
		payload := `{"subject_type":"physician","subject_id":"7"}`

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/hooks/working-hours", strings.NewReader(payload)))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		token, err := utils.GenerateHookJWT("medirdv-backend", testHookSecret, time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/hooks/working-hours", strings.NewReader(payload))
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertNumberOfCalls(t, "HandleWorkingHoursChanged", 1)
	})

	t.Run("Unknown Route", func(t *testing.T) {
		router := setupTestRouter(t, new(MockAvailabilityUsecase))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
