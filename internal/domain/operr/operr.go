// Package operr defines the uniform error shape every operation failure is
// normalized to before it crosses the application boundary. Callers never see
// a raw go-github error: the driven adapter wraps remote failures into
// RemoteError, and Classify maps any failure into an *Error carrying a
// machine-checkable code plus the operation context that produced it.
package operr

import (
	"fmt"
	"net/http"
)

// Code classifies a failure. String-based for debuggability and natural JSON
// serialization.
type Code string

const (
	// CodeInputInvalid marks a missing or malformed input field. Never
	// retryable; the caller must correct the input.
	CodeInputInvalid Code = "INPUT_INVALID"

	// CodeAccessDenied marks an authentication failure or insufficient
	// granted scopes. Requires credential or scope remediation.
	CodeAccessDenied Code = "ACCESS_DENIED"

	// CodeRateLimited marks a 403 with rate-limit wording. Carries the
	// reset time so the caller can schedule its own retry.
	CodeRateLimited Code = "RATE_LIMITED"

	// CodeNotFound marks a missing or inaccessible target resource.
	CodeNotFound Code = "NOT_FOUND"

	// CodeNetworkError marks a transport-level failure. Safe to retry with
	// backoff at the caller's discretion.
	CodeNetworkError Code = "NETWORK_ERROR"

	// CodeInternal marks anything unclassified.
	CodeInternal Code = "INTERNAL"
)

// Phase markers recorded in AttemptedOp once classification occurs.
const (
	OpValidateInput = "validate_input"
	OpVerifyAuth    = "verify_auth"
)

// RepoRef identifies the repository a failing operation concerned.
type RepoRef struct {
	Org  string `json:"org"`
	Name string `json:"name"`
}

// CollaboratorRef identifies the collaborator a failing operation concerned.
type CollaboratorRef struct {
	Username   string `json:"username"`
	Permission string `json:"permission,omitempty"`
}

// Error is the uniform error. It is constructed once, at the first point a
// failure is detected, and only enriched (never replaced) as it propagates.
type Error struct {
	Code             Code             `json:"code"`
	Message          string           `json:"message"`
	Action           string           `json:"action"`
	AttemptedOp      string           `json:"attempted_operation,omitempty"`
	Organization     string           `json:"organization,omitempty"`
	Repository       *RepoRef         `json:"repository,omitempty"`
	Collaborator     *CollaboratorRef `json:"collaborator,omitempty"`
	Settings         map[string]any   `json:"settings,omitempty"`
	RequiredScopes   []string         `json:"required_scopes,omitempty"`
	CurrentScopes    []string         `json:"current_scopes,omitempty"`
	MissingScopes    []string         `json:"missing_scopes,omitempty"`
	RateLimit        *RateLimit       `json:"rate_limit,omitempty"`
	RequestID        string           `json:"request_id,omitempty"`
	DocumentationURL string           `json:"documentation_url,omitempty"`
	Original         *RemoteError     `json:"original_error,omitempty"`
}

// Context carries the operation-specific identity threaded into an error at
// construction or classification time.
type Context struct {
	Action         string
	AttemptedOp    string
	Organization   string
	Repository     *RepoRef
	Collaborator   *CollaboratorRef
	Settings       map[string]any
	RequiredScopes []string
	CurrentScopes  []string
	MissingScopes  []string
}

func (e *Error) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %s", e.Action, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying remote failure for errors.Is/As chains.
func (e *Error) Unwrap() error {
	if e.Original != nil {
		return e.Original
	}
	return nil
}

// New builds a uniform error from a code, message, and operation context.
// Pure and non-failing.
func New(code Code, message string, ctx Context) *Error {
	e := &Error{Code: code, Message: message}
	e.merge(ctx)
	return e
}

// NewValidation builds a uniform error for a purely local validation failure
// that has no underlying remote error; it synthesizes a 400-status original
// so the error shape stays uniform across all failure kinds.
func NewValidation(message string, ctx Context) *Error {
	if ctx.AttemptedOp == "" {
		ctx.AttemptedOp = OpValidateInput
	}
	e := New(CodeInputInvalid, message, ctx)
	e.Original = &RemoteError{StatusCode: http.StatusBadRequest, Message: message}
	return e
}

// merge fills empty context fields without overwriting ones already set, so
// the earliest, most specific classification is preserved as outer layers
// add context.
func (e *Error) merge(ctx Context) {
	if e.Action == "" {
		e.Action = ctx.Action
	}
	if e.AttemptedOp == "" {
		e.AttemptedOp = ctx.AttemptedOp
	}
	if e.Organization == "" {
		e.Organization = ctx.Organization
	}
	if e.Repository == nil {
		e.Repository = ctx.Repository
	}
	if e.Collaborator == nil {
		e.Collaborator = ctx.Collaborator
	}
	if e.Settings == nil {
		e.Settings = ctx.Settings
	}
	if e.RequiredScopes == nil {
		e.RequiredScopes = ctx.RequiredScopes
	}
	if e.CurrentScopes == nil {
		e.CurrentScopes = ctx.CurrentScopes
	}
	if e.MissingScopes == nil {
		e.MissingScopes = ctx.MissingScopes
	}
}
