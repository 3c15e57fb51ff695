package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	Backend  AppBackend  `mapstructure:"backend"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
}

type App struct {
	Env                         string `mapstructure:"env"`
	Port                        string `mapstructure:"port"`
	Version                     string `mapstructure:"version"`
	Timezone                    string `mapstructure:"timezone"`
	EndpointPrefix              string `mapstructure:"endpoint_prefix"`
	MaxRequests                 int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds    int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds   int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte  int    `mapstructure:"request_body_limit_in_megabyte"`
	AdminAPIKeyHash             string `mapstructure:"admin_api_key_hash"`
	WeekdayLocale               string `mapstructure:"weekday_locale"`
	OpeningPolicy               string `mapstructure:"opening_policy"`
	BatchConcurrency            int    `mapstructure:"batch_concurrency"`
	HookRateLimitPerMinute      int    `mapstructure:"hook_rate_limit_per_minute"`
	ScheduleCacheTTLInMinutes   int    `mapstructure:"schedule_cache_ttl_in_minutes"`
	SnapshotCronSpec            string `mapstructure:"snapshot_cron_spec"`
	SnapshotLockTTLInSeconds    int    `mapstructure:"snapshot_lock_ttl_in_seconds"`
	SnapshotTimeoutInSeconds    int    `mapstructure:"snapshot_timeout_in_seconds"`
	CORSAllowedOrigins          string `mapstructure:"cors_allowed_origins"`
	SnapshotWorkerEnabled       bool   `mapstructure:"snapshot_worker_enabled"`
	AvailabilityEventsPublished bool   `mapstructure:"availability_events_published"`
}

// AppBackend describes the marketplace REST backend holding physician and clinic records.
type AppBackend struct {
	BaseUrl               string  `mapstructure:"base_url"`
	TimeoutInSeconds      int     `mapstructure:"timeout_in_seconds"`
	MaxRequestsPerSecond  float64 `mapstructure:"max_requests_per_second"`
	MaxResponseInMegabyte int     `mapstructure:"max_response_in_megabyte"`
	HookSecret            string  `mapstructure:"hook_secret"`
	HookIssuer            string  `mapstructure:"hook_issuer"`
}

type AppMinio struct {
	SnapshotBucket string `mapstructure:"snapshot_bucket"`
}

type AppRabbitMQ struct {
	AvailabilityQueue string `mapstructure:"availability_queue"`
}

var internalDefaults = map[string]interface{}{
	"app.env":                            "development",
	"app.port":                           ":8080",
	"app.version":                        "v1",
	"app.timezone":                       "Europe/Paris",
	"app.endpoint_prefix":                "api",
	"app.max_requests":                   100,
	"app.shutdown_timeout_in_seconds":    10,
	"app.max_time_requests_per_seconds":  60,
	"app.request_body_limit_in_megabyte": 1,
	"app.admin_api_key_hash":             "",
	"app.weekday_locale":                 "fr",
	"app.opening_policy":                 "first_listed",
	"app.batch_concurrency":              8,
	"app.hook_rate_limit_per_minute":     120,
	"app.schedule_cache_ttl_in_minutes":  5,
	"app.snapshot_cron_spec":             "@hourly",
	"app.snapshot_lock_ttl_in_seconds":   300,
	"app.snapshot_timeout_in_seconds":    120,
	"app.cors_allowed_origins":           "https://*,http://*",
	"app.snapshot_worker_enabled":        true,
	"app.availability_events_published":  true,
	"backend.base_url":                   "http://localhost:8000/api",
	"backend.timeout_in_seconds":         10,
	"backend.max_requests_per_second":    20.0,
	"backend.max_response_in_megabyte":   8,
	"backend.hook_secret":                "",
	"backend.hook_issuer":                "medirdv-backend",
	"minio.snapshot_bucket":              "availability-snapshots",
	"rabbitmq.availability_queue":        "availability_changed",
}

// NewInternalConfig reads the application settings from the environment.
// Every key maps to the upper-cased env variable with dots turned into
// underscores, app.port -> APP_PORT.
func NewInternalConfig() (*InternalConfig, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range internalDefaults {
		v.SetDefault(key, value)
		v.BindEnv(key)
	}

	cfg := &InternalConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal internal config: %w", err)
	}
	return cfg, nil
}
