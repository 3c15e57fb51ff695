package utils

import (
	"errors"
	"fmt"
	"medirdv-service/internal/pkg/constvars"
	"net/http"
	"strings"
)

// ParseIDsQuery splits a comma separated ids query parameter, dropping blanks
// and duplicates while keeping the requested order.
func ParseIDsQuery(r *http.Request) []string {
	raw := r.URL.Query().Get(constvars.URLQueryParamIDs)
	if raw == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, piece := range strings.Split(raw, ",") {
		id := strings.TrimSpace(piece)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if !strings.HasPrefix(header, constvars.AuthorizationBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constvars.AuthorizationBearerPrefix))
}

const maxURLParamIDLength = 64

// ValidateURLParamID accepts the identifiers used by the directory backend:
// letters, digits, dashes and underscores.
func ValidateURLParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	if len(param) > maxURLParamIDLength {
		return fmt.Errorf("parameter exceeds %d characters", maxURLParamIDLength)
	}
	for _, c := range param {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("parameter contains invalid character %q", c)
		}
	}
	return nil
}
