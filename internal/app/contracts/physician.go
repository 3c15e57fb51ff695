package contracts

import (
	"context"
	"medirdv-service/internal/pkg/dto/responses"
)

type PhysicianBackendClient interface {
	FindPhysicianByID(ctx context.Context, physicianID string) (*responses.Physician, error)
	FindAllPhysicians(ctx context.Context) ([]responses.Physician, error)
}
