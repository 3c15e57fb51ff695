package contracts

import (
	"context"
	"medirdv-service/internal/pkg/dto/requests"
	"medirdv-service/internal/pkg/dto/responses"
)

type AvailabilityUsecase interface {
	FindPhysicianAvailability(ctx context.Context, physicianID string) (*responses.Availability, error)
	FindClinicAvailability(ctx context.Context, clinicID string) (*responses.Availability, error)
	FindPhysiciansAvailability(ctx context.Context, request *requests.FindPhysiciansAvailability) (*responses.BatchAvailability, error)
	ResolveSchedule(ctx context.Context, request *requests.ResolveAvailability) (*responses.ResolvedSchedule, error)
	HandleWorkingHoursChanged(ctx context.Context, request *requests.WorkingHoursChanged) (*responses.Availability, error)
	BuildSnapshot(ctx context.Context) (*responses.Snapshot, error)
	PublishSnapshot(ctx context.Context) (*responses.SnapshotPublished, error)
}
