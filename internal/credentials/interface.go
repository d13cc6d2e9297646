package credentials

import "context"

// Provider performs authenticated HTTP GETs against the upstream API.
// This allows for mock implementations to be used in tests.
type Provider interface {
	// AuthenticatedGet issues a GET for url with credentials attached and
	// returns the raw response body and HTTP status code. A missing or
	// unusable credential is reported as an AuthError.
	AuthenticatedGet(ctx context.Context, url string) ([]byte, int, error)
}
