package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetPhysicianAvailabilitySuccessMessage  = "get physician availability successfully"
	GetPhysiciansAvailabilitySuccessMessage = "get physicians availability successfully"
	GetClinicAvailabilitySuccessMessage     = "get clinic availability successfully"
	ResolveAvailabilitySuccessMessage       = "availability resolved successfully"
	WorkingHoursChangedSuccessMessage       = "working hours change processed successfully"
	PublishSnapshotSuccessMessage           = "availability snapshot published successfully"
	HealthCheckSuccessMessage               = "service is healthy"
)
