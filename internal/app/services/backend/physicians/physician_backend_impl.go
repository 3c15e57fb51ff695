package physicians

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

type physicianBackendClient struct {
	client *backend.Client
}

func NewPhysicianBackendClient(client *backend.Client) contracts.PhysicianBackendClient {
	return &physicianBackendClient{client: client}
}

func (c *physicianBackendClient) FindPhysicianByID(ctx context.Context, physicianID string) (*responses.Physician, error) {
	body, err := c.client.Get(ctx, "/"+constvars.ResourcePhysicians+"/"+url.PathEscape(physicianID), constvars.ResourcePhysicians)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, exceptions.ErrPhysicianNotFound(err, physicianID)
	}
	if err != nil {
		return nil, err
	}

	physician := physicianFromRecord(body)
	if physician.ID == "" {
		physician.ID = physicianID
	}
	return physician, nil
}

func (c *physicianBackendClient) FindAllPhysicians(ctx context.Context) ([]responses.Physician, error) {
	records, err := c.client.List(ctx, "/"+constvars.ResourcePhysicians, constvars.ResourcePhysicians)
	if err != nil {
		return nil, err
	}

	physicians := make([]responses.Physician, 0, len(records))
	for _, record := range records {
		physician := physicianFromRecord(record)
		if physician.ID == "" {
			continue
		}
		physicians = append(physicians, *physician)
	}
	return physicians, nil
}

// physicianFromRecord reads a backend record leniently. Identifiers may be
// numbers or strings and working_hours may be an array or a JSON string.
func physicianFromRecord(record []byte) *responses.Physician {
	fields := gjson.GetManyBytes(record, "id", "first_name", "last_name", "specialty")
	return &responses.Physician{
		ID:           fields[0].String(),
		FirstName:    fields[1].String(),
		LastName:     fields[2].String(),
		Specialty:    fields[3].String(),
		WorkingHours: availability.ScheduleFromRecord(record),
	}
}
