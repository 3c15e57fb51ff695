package contracts

import (
	"context"
	"medirdv-service/internal/pkg/dto/responses"
)

type AvailabilityPublisher interface {
	PublishAvailabilityChanged(ctx context.Context, event *responses.AvailabilityChangedEvent) error
}
