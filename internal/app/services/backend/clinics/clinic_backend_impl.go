package clinics

import (
	"context"
	"errors"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/app/services/backend"
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/exceptions"
	"net/url"

	"github.com/tidwall/gjson"
)

type clinicBackendClient struct {
	client *backend.Client
}

func NewClinicBackendClient(client *backend.Client) contracts.ClinicBackendClient {
	return &clinicBackendClient{client: client}
}

func (c *clinicBackendClient) FindClinicByID(ctx context.Context, clinicID string) (*responses.Clinic, error) {
	body, err := c.client.Get(ctx, "/"+constvars.ResourceClinics+"/"+url.PathEscape(clinicID), constvars.ResourceClinics)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, exceptions.ErrClinicNotFound(err, clinicID)
	}
	if err != nil {
		return nil, err
	}

	clinic := clinicFromRecord(body)
	if clinic.ID == "" {
		clinic.ID = clinicID
	}
	return clinic, nil
}

func (c *clinicBackendClient) FindAllClinics(ctx context.Context) ([]responses.Clinic, error) {
	records, err := c.client.List(ctx, "/"+constvars.ResourceClinics, constvars.ResourceClinics)
	if err != nil {
		return nil, err
	}

	clinics := make([]responses.Clinic, 0, len(records))
	for _, record := range records {
		clinic := clinicFromRecord(record)
		if clinic.ID == "" {
			continue
		}
		clinics = append(clinics, *clinic)
	}
	return clinics, nil
}

func clinicFromRecord(record []byte) *responses.Clinic {
	fields := gjson.GetManyBytes(record, "id", "name", "city")
	return &responses.Clinic{
		ID:           fields[0].String(),
		Name:         fields[1].String(),
		City:         fields[2].String(),
		WorkingHours: availability.ScheduleFromRecord(record),
	}
}
