package contracts

import (
	"context"
	"medirdv-service/internal/pkg/dto/responses"
)

type ClinicBackendClient interface {
	FindClinicByID(ctx context.Context, clinicID string) (*responses.Clinic, error)
	FindAllClinics(ctx context.Context) ([]responses.Clinic, error)
}
