package provider

import "fmt"

// UpstreamAPIError reports an unusable API response: either a non-success HTTP
// status or a body that lacks an expected field.
type UpstreamAPIError struct {
	StatusCode   int
	Reason       string
	MissingField string
}

func (e *UpstreamAPIError) Error() string {
	if e.MissingField != "" {
		return fmt.Sprintf("missing required data field: '%s'", e.MissingField)
	}
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Reason)
}
