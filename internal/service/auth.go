package service

import (
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
)

// CheckBearer validates an Authorization header against token.
// An empty token disables the check.
func CheckBearer(header, token string) error {
	if token == "" {
		return nil
	}
	if header == "" {
		return errors.Unauthorized("UNAUTHORIZED", "missing Authorization header")
	}

	// Check Bearer token format
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return errors.Unauthorized("UNAUTHORIZED", "invalid Authorization header format")
	}

	if parts[1] != token {
		return errors.Unauthorized("UNAUTHORIZED", "invalid token")
	}
	return nil
}
