package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"oneof":          "must be one of [%s]",
	"datetime":       "must follow the %s layout",
	"subject_type":   "must be either physician or clinic",
	"opening_policy": "must be either first_listed or earliest",
	"weekday_locale": "must be either fr or en",
}

// Tags whose message embeds the validator parameter
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientPhysicianNotFound             = "physician not found"
	ErrClientClinicNotFound                = "clinic not found"
	ErrClientDirectoryUnavailable          = "the practitioner directory is unavailable, please try again later"
	ErrClientTooManyIDs                    = "too many ids requested at once"
	ErrClientTooManyRequests               = "too many requests on single time-frame"
)

// Error messages for developers
const (
	ErrDevInvalidInput            = "invalid input"
	ErrDevValidationFailed        = "validation failed"
	ErrDevCannotParseJSON         = "cannot parse JSON"
	ErrDevCannotMarshalJSON       = "cannot marshal JSON"
	ErrDevCannotParseTime         = "cannot parse time %s, expected RFC3339"
	ErrDevReadBody                = "failed to read request body"
	ErrDevMissingRequestID        = "request id missing from context"
	ErrDevURLParamIDValidation    = "url param %s is invalid"
	ErrDevTooManyIDs              = "requested %d ids, maximum is %d"
	ErrDevServerDeadlineExceeded  = "server deadline exceeded"
	ErrDevServerProcess           = "server failed to process the request"
	ErrDevPanicRecovered          = "panic recovered while serving request"
	ErrDevCreateHTTPRequest       = "failed to create HTTP request"
	ErrDevSendHTTPRequest         = "failed to send HTTP request"
	ErrDevRateLimitWait           = "outbound rate limiter wait aborted"
	ErrDevBackendResourceNotFound = "backend has no %s with id %s"
	ErrDevBackendUnexpectedStatus = "backend answered %d for %s"
	ErrDevBackendDecodeResponse   = "failed to decode backend %s response"
	ErrDevAuthTokenMissing        = "authorization token missing"
	ErrDevAuthTokenInvalid        = "authorization token invalid or expired"
	ErrDevInvalidAPIKey           = "INVALID_API_KEY"
	ErrDevAPIKeyRequired          = "API_KEY_REQUIRED"
	ErrDevAPIKeyNotConfigured     = "admin api key hash is not configured"
	ErrDevUnsupportedSubjectType  = "unsupported subject type %s"
	ErrDevSnapshotAlreadyRunning  = "another instance holds the snapshot leader lock"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis with key %s"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE data in redis"
	ErrDevRedisUnlock     = "failed to release redis lock"
	ErrDevRedisIncrement  = "failed to INCR counter in redis with key %s"

	// RabbitMQ messages
	ErrDevRabbitMQOpenChannel = "failed to open rabbitMQ channel"
	ErrDevRabbitMQDeclare     = "failed to declare rabbitMQ queue %s"
	ErrDevRabbitMQPublish     = "failed to publish message to rabbitMQ queue %s"

	// Minio messages
	ErrDevMinioCreateObject = "failed to create object in minio bucket %s"
)
