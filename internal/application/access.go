package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// scopesDocURL is attached to every insufficient-scope failure so callers
// know where to look when regenerating a token.
const scopesDocURL = "https://docs.github.com/apps/oauth-apps/building-oauth-apps/scopes-for-oauth-apps"

// AccessVerifier checks that the caller's token authenticates and carries the
// scopes an operation requires. Identity and scopes are fetched fresh on
// every call; nothing is cached across operations.
type AccessVerifier struct {
	client driven.GitHubClient
	log    *slog.Logger
}

// NewAccessVerifier creates an AccessVerifier over the given client port.
func NewAccessVerifier(client driven.GitHubClient, log *slog.Logger) *AccessVerifier {
	return &AccessVerifier{client: client, log: log}
}

// VerifyAuth authenticates the token and returns the caller's identity.
// Failures from the client propagate unchanged: the verifier never masks an
// upstream authentication error with its own wrapping.
func (v *AccessVerifier) VerifyAuth(ctx context.Context) (*model.Identity, error) {
	return v.client.VerifyIdentity(ctx)
}

// VerifyAuthAndScopes authenticates the token and then checks that every
// required scope is granted. Comparison is exact set inclusion over the flat
// scope tokens; no scope implies another at this layer.
func (v *AccessVerifier) VerifyAuthAndScopes(ctx context.Context, required []string) (*model.Identity, error) {
	identity, err := v.VerifyAuth(ctx)
	if err != nil {
		v.log.Error("access verification failed",
			"required_scopes", required,
			"error", err,
		)
		return nil, err
	}

	missing := missingScopes(identity.Scopes, required)
	if len(missing) == 0 {
		return identity, nil
	}

	e := operr.New(operr.CodeAccessDenied,
		fmt.Sprintf("token is missing required scopes: %s", strings.Join(missing, ", ")),
		operr.Context{
			AttemptedOp:    operr.OpVerifyAuth,
			RequiredScopes: required,
			CurrentScopes:  identity.Scopes,
			MissingScopes:  missing,
		})
	e.DocumentationURL = scopesDocURL

	v.log.Error("access verification failed",
		"required_scopes", required,
		"current_scopes", identity.Scopes,
		"missing_scopes", missing,
	)

	return nil, e
}

// missingScopes returns required minus current, preserving required's order.
func missingScopes(current, required []string) []string {
	granted := make(map[string]struct{}, len(current))
	for _, s := range current {
		granted[s] = struct{}{}
	}

	var missing []string
	for _, s := range required {
		if _, ok := granted[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}
