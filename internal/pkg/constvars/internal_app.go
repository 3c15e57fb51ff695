package constvars

type ContextKey string

const (
	ResourcePhysicians   = "physicians"
	ResourceClinics      = "clinics"
	ResourceAvailability = "availability"
	ResourceSnapshot     = "snapshot"
)

const (
	SubjectTypePhysician = "physician"
	SubjectTypeClinic    = "clinic"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_HOOK_ISSUER_KEY          ContextKey = "hook_issuer"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "MEDIRDV_SVC_"
)

const (
	// Prefix of redis keys holding normalized schedules, completed with "<subject type>:<id>".
	RedisKeyScheduleCachePrefix = "availability:schedule:"
	// Redis key guarding the snapshot worker so a single instance publishes at a time.
	RedisKeySnapshotLeaderLock = "availability:snapshot:leader"

	// Group of the fixed-window counters throttling working-hours hooks per issuer.
	RedisKeyHookLimiterGroup = "HOOK-LIMIT"
)

const (
	EventAvailabilityChanged = "availability.changed"
	SnapshotObjectPrefix     = "availability/snapshot-"
	SnapshotObjectExtension  = ".json"
)

const (
	MaxBatchAvailabilityIDs = 50
)

const (
	WeekdayLocaleFrench  = "fr"
	WeekdayLocaleEnglish = "en"
)
