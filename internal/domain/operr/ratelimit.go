package operr

import "net/http"

// RateLimit is the snapshot read from the X-RateLimit-* response headers of
// the most recent remote call. Values are passed through as the opaque
// strings GitHub sent; Reset in particular stays an epoch-seconds string,
// converted to a human-readable time only at the presentation edge.
type RateLimit struct {
	Limit     string `json:"limit,omitempty"`
	Remaining string `json:"remaining,omitempty"`
	Reset     string `json:"reset,omitempty"`
	Used      string `json:"used,omitempty"`
}

// RateLimitFromHeaders projects the four well-known rate-limit headers into
// a snapshot. Absent headers yield empty fields; no parsing is performed.
func RateLimitFromHeaders(h http.Header) *RateLimit {
	if h == nil {
		return &RateLimit{}
	}
	return &RateLimit{
		Limit:     h.Get("X-RateLimit-Limit"),
		Remaining: h.Get("X-RateLimit-Remaining"),
		Reset:     h.Get("X-RateLimit-Reset"),
		Used:      h.Get("X-RateLimit-Used"),
	}
}
