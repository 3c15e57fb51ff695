package constvars

const (
	URLParamPhysicianID = "physician_id"
	URLParamClinicID    = "clinic_id"
)

const (
	URLQueryParamIDs = "ids"
)
