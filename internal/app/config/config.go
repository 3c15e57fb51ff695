package config

import (
	"strings"
	"time"

	"medirdv-service/internal/pkg/availability"
)

func (c *InternalConfig) IsProduction() bool {
	return c.App.Env == "production"
}

// Location loads the configured timezone, falling back to the process local zone.
func (c *InternalConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *InternalConfig) WeekdayNames() availability.WeekdayNames {
	return availability.NamesForLocale(c.App.WeekdayLocale)
}

func (c *InternalConfig) OpeningPolicy() availability.OpeningPolicy {
	return availability.ParseOpeningPolicy(c.App.OpeningPolicy)
}

func (c *InternalConfig) ScheduleCacheTTL() time.Duration {
	return time.Duration(c.App.ScheduleCacheTTLInMinutes) * time.Minute
}

func (c *InternalConfig) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutInSeconds) * time.Second
}

func (c *InternalConfig) BackendMaxResponseBytes() int64 {
	return int64(c.Backend.MaxResponseInMegabyte) << 20
}

func (c *InternalConfig) SnapshotLockTTL() time.Duration {
	return time.Duration(c.App.SnapshotLockTTLInSeconds) * time.Second
}

func (c *InternalConfig) SnapshotTimeout() time.Duration {
	return time.Duration(c.App.SnapshotTimeoutInSeconds) * time.Second
}

func (c *InternalConfig) CORSAllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.App.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
