// Package application contains the operation services exposed to the MCP
// dispatch layer. Every operation follows the same skeleton: log intent,
// validate input, verify access, perform the remote call, shape the result.
// All failures funnel through operr.Classify so callers only ever see the
// uniform error shape.
package application

import (
	"log/slog"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// operationCore is the capability set shared by all operation services:
// the GitHub client port, the access verifier, and a logger. Services embed
// it by composition rather than inheriting from a common base.
type operationCore struct {
	client   driven.GitHubClient
	verifier *AccessVerifier
	log      *slog.Logger
}

// logOperation emits a debug-level record before any side effect begins.
func (c *operationCore) logOperation(action string, args ...any) {
	c.log.Debug("executing operation", append([]any{"action", action}, args...)...)
}

// fail classifies a failure, enriches it with the operation context, logs it
// at error level, and returns the uniform error. Errors that are already
// uniform keep their original classification; only missing context is added.
func (c *operationCore) fail(err error, ctx operr.Context) *operr.Error {
	e := operr.Classify(err, ctx)

	attrs := []any{
		"action", e.Action,
		"code", e.Code,
		"error", e.Message,
	}
	if e.AttemptedOp != "" {
		attrs = append(attrs, "attempted_operation", e.AttemptedOp)
	}
	if e.Organization != "" {
		attrs = append(attrs, "organization", e.Organization)
	}
	if e.Repository != nil {
		attrs = append(attrs, "repository", e.Repository.Org+"/"+e.Repository.Name)
	}
	if e.Collaborator != nil {
		attrs = append(attrs, "collaborator", e.Collaborator.Username)
	}
	if e.RateLimit != nil {
		attrs = append(attrs, "rate_remaining", e.RateLimit.Remaining, "rate_reset", e.RateLimit.Reset)
	}
	c.log.Error("operation failed", attrs...)

	return e
}
