package github

import (
	"errors"
	"net/http"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
)

// wrapRemote converts a go-github error into a typed *operr.RemoteError,
// preserving status, message, response headers, request id and documentation
// URL for later classification. Transport-level errors (url.Error, net
// errors) pass through unchanged so the classifier can recognize them as
// network failures.
func wrapRemote(err error) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		remote := &operr.RemoteError{
			Message:          ghErr.Message,
			Body:             ghErr.Error(),
			DocumentationURL: ghErr.DocumentationURL,
			Err:              err,
		}
		if ghErr.Response != nil {
			remote.StatusCode = ghErr.Response.StatusCode
			remote.Headers = ghErr.Response.Header
			remote.RequestID = ghErr.Response.Header.Get("X-Github-Request-Id")
		}
		return remote
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		remote := &operr.RemoteError{
			StatusCode: http.StatusForbidden,
			Message:    rateErr.Message,
			Err:        err,
		}
		if remote.Message == "" {
			remote.Message = "API rate limit exceeded"
		}
		if rateErr.Response != nil {
			remote.StatusCode = rateErr.Response.StatusCode
			remote.Headers = rateErr.Response.Header
			remote.RequestID = rateErr.Response.Header.Get("X-Github-Request-Id")
		}
		return remote
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		remote := &operr.RemoteError{
			StatusCode: http.StatusForbidden,
			Message:    abuseErr.Message,
			Err:        err,
		}
		if remote.Message == "" {
			remote.Message = "secondary rate limit exceeded"
		}
		if abuseErr.Response != nil {
			remote.StatusCode = abuseErr.Response.StatusCode
			remote.Headers = abuseErr.Response.Header
			remote.RequestID = abuseErr.Response.Header.Get("X-Github-Request-Id")
		}
		return remote
	}

	return err
}
