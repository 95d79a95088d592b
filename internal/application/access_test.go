package application

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
)

func TestVerifyAuthAndScopes_AllGranted(t *testing.T) {
	client := newFakeClient()
	verifier := NewAccessVerifier(client, testLogger())

	identity, err := verifier.VerifyAuthAndScopes(context.Background(), []string{"repo", "read:org"})

	require.NoError(t, err)
	assert.Equal(t, "octocat", identity.Username)
	assert.Equal(t, 1, client.verifyCalls)
}

func TestVerifyAuthAndScopes_MissingScope(t *testing.T) {
	client := newFakeClient()
	client.identity = &model.Identity{Username: "octocat", Scopes: []string{"repo"}}
	verifier := NewAccessVerifier(client, testLogger())

	_, err := verifier.VerifyAuthAndScopes(context.Background(), []string{"repo", "read:org"})

	var e *operr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, operr.CodeAccessDenied, e.Code)
	assert.Equal(t, operr.OpVerifyAuth, e.AttemptedOp)
	assert.Equal(t, []string{"repo", "read:org"}, e.RequiredScopes)
	assert.Equal(t, []string{"repo"}, e.CurrentScopes)
	assert.Equal(t, []string{"read:org"}, e.MissingScopes)
	assert.NotEmpty(t, e.DocumentationURL)
}

func TestVerifyAuthAndScopes_NoScopesAtAll(t *testing.T) {
	client := newFakeClient()
	client.identity = &model.Identity{Username: "octocat", Scopes: []string{}}
	verifier := NewAccessVerifier(client, testLogger())

	_, err := verifier.VerifyAuthAndScopes(context.Background(), []string{"repo"})

	var e *operr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"repo"}, e.MissingScopes)
}

func TestVerifyAuthAndScopes_UpstreamFailurePropagatesUnchanged(t *testing.T) {
	client := newFakeClient()
	client.identityErr = &operr.RemoteError{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}
	verifier := NewAccessVerifier(client, testLogger())

	_, err := verifier.VerifyAuthAndScopes(context.Background(), []string{"repo"})

	// Not masked by a scope error: the raw remote error comes through.
	var remote *operr.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnauthorized, remote.StatusCode)
	var uniform *operr.Error
	assert.False(t, errors.As(err, &uniform))
}

func TestVerifyAuthAndScopes_NoCachingBetweenCalls(t *testing.T) {
	client := newFakeClient()
	verifier := NewAccessVerifier(client, testLogger())

	_, err := verifier.VerifyAuthAndScopes(context.Background(), []string{"repo"})
	require.NoError(t, err)
	_, err = verifier.VerifyAuthAndScopes(context.Background(), []string{"repo"})
	require.NoError(t, err)

	assert.Equal(t, 2, client.verifyCalls)
}

func TestMissingScopes_ExactSetInclusion(t *testing.T) {
	tests := []struct {
		name     string
		current  []string
		required []string
		want     []string
	}{
		{"subset granted", []string{"repo"}, []string{"repo", "read:org"}, []string{"read:org"}},
		{"all granted", []string{"repo", "read:org"}, []string{"repo"}, nil},
		{"no hierarchy awareness", []string{"repo"}, []string{"repo:status"}, []string{"repo:status"}},
		{"empty required", []string{}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, missingScopes(tt.current, tt.required))
		})
	}
}
