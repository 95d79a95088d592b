package operr

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// Classify maps any failure into a uniform *Error, enriched with the given
// operation context. Classification is evaluated in priority order:
//
//  1. already uniform: merge the context into the existing error and return
//     the same value, preserving the earliest classification;
//  2. remote 403 whose text mentions rate limiting: RATE_LIMITED with the
//     rate-limit snapshot read from the response headers;
//  3. remote 401: ACCESS_DENIED (bad or expired credential);
//  4. remote 404: NOT_FOUND;
//  5. transport-level failure (refused connection, timeout, DNS): NETWORK_ERROR;
//  6. anything else: INTERNAL, carrying the raw message.
//
// Pure and non-failing; always returns a value.
func Classify(err error, ctx Context) *Error {
	var uniform *Error
	if errors.As(err, &uniform) {
		uniform.merge(ctx)
		return uniform
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		e := classifyRemote(remote, ctx)
		e.Original = remote
		e.RequestID = remote.RequestID
		e.DocumentationURL = remote.DocumentationURL
		return e
	}

	if isNetworkError(err) {
		return New(CodeNetworkError, "network error calling GitHub API: "+err.Error(), ctx)
	}

	return New(CodeInternal, err.Error(), ctx)
}

func classifyRemote(remote *RemoteError, ctx Context) *Error {
	switch {
	case remote.StatusCode == http.StatusForbidden && remote.MentionsRateLimit():
		e := New(CodeRateLimited, "GitHub API rate limit exceeded: "+remote.Message, ctx)
		e.RateLimit = RateLimitFromHeaders(remote.Headers)
		return e
	case remote.StatusCode == http.StatusUnauthorized:
		return New(CodeAccessDenied, "authentication failed: "+remote.Message, ctx)
	case remote.StatusCode == http.StatusNotFound:
		msg := remote.Message
		if msg == "" {
			msg = "resource not found"
		}
		return New(CodeNotFound, msg, ctx)
	default:
		return New(CodeInternal, remote.Message, ctx)
	}
}

// isNetworkError recognizes transport-level failures: typed net errors plus
// the wording of failures that reach us only as strings (connection refused,
// timeouts, DNS resolution).
func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	text := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"timed out",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
