package operr

import (
	"fmt"
	"net/http"
	"strings"
)

// RemoteError is the typed carrier of a raw remote-API failure. The driven
// adapter builds one from every go-github error so that classification never
// has to inspect ad hoc fields on unknown error values.
type RemoteError struct {
	StatusCode       int         `json:"status"`
	Message          string      `json:"message"`
	Body             string      `json:"response,omitempty"`
	Headers          http.Header `json:"headers,omitempty"`
	RequestID        string      `json:"request_id,omitempty"`
	DocumentationURL string      `json:"documentation_url,omitempty"`

	// Err is the wrapped go-github error, kept for errors.Is/As chains but
	// excluded from serialization.
	Err error `json:"-"`
}

func (r *RemoteError) Error() string {
	if r.StatusCode != 0 {
		return fmt.Sprintf("remote call failed (%d): %s", r.StatusCode, r.Message)
	}
	return fmt.Sprintf("remote call failed: %s", r.Message)
}

func (r *RemoteError) Unwrap() error { return r.Err }

// MentionsRateLimit reports whether the failure text talks about rate
// limiting. GitHub signals both primary and secondary rate limits as 403s
// whose message or body contains "rate limit" in some casing.
func (r *RemoteError) MentionsRateLimit() bool {
	text := strings.ToLower(r.Message + " " + r.Body)
	return strings.Contains(text, "rate limit")
}
