package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
)

func newOrgService(client *fakeGitHubClient) *OrgService {
	log := testLogger()
	return NewOrgService(client, NewAccessVerifier(client, log), log)
}

// rateLimitedRemote mimics a GitHub 403 rate-limit rejection with the
// standard headers.
func rateLimitedRemote() *operr.RemoteError {
	h := http.Header{}
	h.Set("X-RateLimit-Remaining", "0")
	h.Set("X-RateLimit-Reset", "1609459200")
	return &operr.RemoteError{
		StatusCode: http.StatusForbidden,
		Message:    "API rate limit exceeded for user ID 1",
		Headers:    h,
	}
}

func assertRateLimited(t *testing.T, err error) {
	t.Helper()

	var e *operr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, operr.CodeRateLimited, e.Code)
	require.NotNil(t, e.RateLimit)
	assert.Equal(t, "0", e.RateLimit.Remaining)
	assert.Equal(t, "1609459200", e.RateLimit.Reset)
}

func TestListOrganizations_MergesBothSources(t *testing.T) {
	client := newFakeClient()
	client.memberOrgs = []model.Organization{{Login: "a"}}
	client.visibleOrgs = []model.Organization{{Login: "a"}, {Login: "b"}}
	svc := newOrgService(client)

	orgs, err := svc.ListOrganizations(context.Background())

	require.NoError(t, err)
	require.Len(t, orgs, 2)

	assert.Equal(t, "a", orgs[0].Login)
	assert.True(t, orgs[0].IsMember)
	assert.True(t, orgs[0].IsVisible)

	assert.Equal(t, "b", orgs[1].Login)
	assert.False(t, orgs[1].IsMember)
	assert.True(t, orgs[1].IsVisible)
}

func TestListOrganizations_MemberOnlyKeepsMemberFlag(t *testing.T) {
	client := newFakeClient()
	client.memberOrgs = []model.Organization{{Login: "secret-org"}}
	svc := newOrgService(client)

	orgs, err := svc.ListOrganizations(context.Background())

	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.True(t, orgs[0].IsMember)
	assert.False(t, orgs[0].IsVisible)
}

func TestListOrganizations_RequiresReadOrgScope(t *testing.T) {
	client := newFakeClient()
	client.identity = &model.Identity{Username: "octocat", Scopes: []string{"repo"}}
	svc := newOrgService(client)

	_, err := svc.ListOrganizations(context.Background())

	var e *operr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, operr.CodeAccessDenied, e.Code)
	assert.Equal(t, "list_organizations", e.Action)
	assert.Equal(t, []string{"read:org"}, e.RequiredScopes)
	assert.Equal(t, 0, client.remoteCalls())
}

func TestListOrganizations_RateLimited(t *testing.T) {
	client := newFakeClient()
	client.memberErr = rateLimitedRemote()
	svc := newOrgService(client)

	_, err := svc.ListOrganizations(context.Background())

	assertRateLimited(t, err)
}

func TestListRepositories_MissingOrg(t *testing.T) {
	client := newFakeClient()
	svc := newOrgService(client)

	_, err := svc.ListRepositories(context.Background(), "")

	var e *operr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, operr.CodeInputInvalid, e.Code)
	assert.Equal(t, operr.OpValidateInput, e.AttemptedOp)
	assert.Equal(t, "list_repositories", e.Action)
	assert.Equal(t, 0, client.verifyCalls, "validation failure must precede the access check")
	assert.Equal(t, 0, client.remoteCalls())
}

func TestListRepositories_SynthesizesCloneURL(t *testing.T) {
	client := newFakeClient()
	client.repos = []model.Repository{
		{Name: "widgets", FullName: "acme/widgets", CloneURL: "https://github.com/acme/widgets.git"},
		{Name: "gadgets", FullName: "acme/gadgets"}, // remote omitted clone_url
	}
	svc := newOrgService(client)

	repos, err := svc.ListRepositories(context.Background(), "acme")

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "https://github.com/acme/widgets.git", repos[0].CloneURL)
	assert.Equal(t, "https://github.com/acme/gadgets.git", repos[1].CloneURL)
}

func TestListRepositories_NotFound(t *testing.T) {
	client := newFakeClient()
	client.listReposErr = &operr.RemoteError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	svc := newOrgService(client)

	_, err := svc.ListRepositories(context.Background(), "ghost-org")

	var e *operr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, operr.CodeNotFound, e.Code)
	assert.Equal(t, "ghost-org", e.Organization)
	assert.Equal(t, "list_repos", e.AttemptedOp)
}

func TestListRepositories_RateLimited(t *testing.T) {
	client := newFakeClient()
	client.listReposErr = rateLimitedRemote()
	svc := newOrgService(client)

	_, err := svc.ListRepositories(context.Background(), "acme")

	assertRateLimited(t, err)
}

func TestMergeOrganizations_PreservesFirstSeenOrder(t *testing.T) {
	merged := mergeOrganizations(
		[]model.Organization{{Login: "b"}, {Login: "a"}},
		[]model.Organization{{Login: "c"}, {Login: "a"}},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, "b", merged[0].Login)
	assert.Equal(t, "a", merged[1].Login)
	assert.Equal(t, "c", merged[2].Login)
	assert.True(t, merged[1].IsMember)
	assert.True(t, merged[1].IsVisible)
}
