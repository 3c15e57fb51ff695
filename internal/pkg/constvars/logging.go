package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingRequestKey           = "request"
	LoggingResponseKey          = "response"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingStatusCodeKey        = "status_code"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingIsClientRequestIDKey = "is_client_request_id"
	LoggingPhysicianIDKey       = "physician_id"
	LoggingClinicIDKey          = "clinic_id"
	LoggingSubjectTypeKey       = "subject_type"
	LoggingSubjectIDKey         = "subject_id"
	LoggingStatusKindKey        = "status_kind"
	LoggingCacheHitKey          = "cache_hit"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingLockStoredValueKey   = "lock_stored_value"
	LoggingBucketKey            = "bucket"
	LoggingObjectNameKey        = "object_name"
	LoggingQueueKey             = "queue"
	LoggingURLKey               = "url"
	LoggingResponseLengthKey    = "response_length"
	LoggingErrorDetailKey       = "error_detail"
	LoggingOperationKey         = "operation"
	LoggingIssuerKey            = "issuer"
	LoggingCountKey             = "count"
)
