package availabilities

import (
	"context"
	"time"

	"medirdv-service/internal/pkg/dto/requests"
	"medirdv-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockPhysicianBackend struct {
	mock.Mock
}

func (m *MockPhysicianBackend) FindPhysicianByID(ctx context.Context, physicianID string) (*responses.Physician, error) {
	args := m.Called(ctx, physicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Physician), args.Error(1)
}

func (m *MockPhysicianBackend) FindAllPhysicians(ctx context.Context) ([]responses.Physician, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.Physician), args.Error(1)
}

type MockClinicBackend struct {
	mock.Mock
}

func (m *MockClinicBackend) FindClinicByID(ctx context.Context, clinicID string) (*responses.Clinic, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Clinic), args.Error(1)
}

func (m *MockClinicBackend) FindAllClinics(ctx context.Context) ([]responses.Clinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.Clinic), args.Error(1)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	args := m.Called(ctx, key, ttl)
	return args.Int(0), args.Error(1)
}

func (m *MockRedisRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAvailabilityChanged(ctx context.Context, event *responses.AvailabilityChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockStorage) UploadJSON(ctx context.Context, bucketName, objectName string, data []byte) (string, error) {
	args := m.Called(ctx, bucketName, objectName, data)
	return args.String(0), args.Error(1)
}

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
