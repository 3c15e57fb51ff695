package exceptions

import "medirdv-service/internal/pkg/constvars"

func ErrInvalidAPIKey(err error) error {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, "Invalid API key", constvars.ErrDevInvalidAPIKey)
}

func ErrAPIKeyRequired(err error) error {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, "API key is required", constvars.ErrDevAPIKeyRequired)
}

func ErrAPIKeyNotConfigured(err error) error {
	return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevAPIKeyNotConfigured)
}
