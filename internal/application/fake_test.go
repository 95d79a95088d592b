package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// fakeGitHubClient is a hand-rolled port fake that records call counts so
// tests can prove no remote call happened on a validation or access failure.
type fakeGitHubClient struct {
	identity    *model.Identity
	identityErr error

	memberOrgs  []model.Organization
	memberErr   error
	visibleOrgs []model.Organization
	visibleErr  error

	repos        []model.Repository
	listReposErr error

	createdRepo *model.Repository
	createErr   error

	updated   model.RepoSettings
	updateErr error

	invited bool
	addErr  error

	verifyCalls      int
	listMemberCalls  int
	listVisibleCalls int
	listReposCalls   int
	createCalls      int
	updateCalls      int
	addCalls         int

	lastCreateOrg  string
	lastCreateSpec model.RepositorySpec
	lastUpdate     model.RepoSettings
	lastPermission string
}

var _ driven.GitHubClient = (*fakeGitHubClient)(nil)

// newFakeClient returns a fake authenticated as octocat with both scopes the
// operations need.
func newFakeClient() *fakeGitHubClient {
	return &fakeGitHubClient{
		identity: &model.Identity{Username: "octocat", Scopes: []string{"repo", "read:org"}},
	}
}

// remoteCalls counts every call except identity verification.
func (f *fakeGitHubClient) remoteCalls() int {
	return f.listMemberCalls + f.listVisibleCalls + f.listReposCalls +
		f.createCalls + f.updateCalls + f.addCalls
}

func (f *fakeGitHubClient) VerifyIdentity(ctx context.Context) (*model.Identity, error) {
	f.verifyCalls++
	if f.identityErr != nil {
		return nil, f.identityErr
	}
	return f.identity, nil
}

func (f *fakeGitHubClient) ListMemberOrganizations(ctx context.Context) ([]model.Organization, error) {
	f.listMemberCalls++
	return f.memberOrgs, f.memberErr
}

func (f *fakeGitHubClient) ListVisibleOrganizations(ctx context.Context) ([]model.Organization, error) {
	f.listVisibleCalls++
	return f.visibleOrgs, f.visibleErr
}

func (f *fakeGitHubClient) ListRepositories(ctx context.Context, org string) ([]model.Repository, error) {
	f.listReposCalls++
	return f.repos, f.listReposErr
}

func (f *fakeGitHubClient) CreateRepository(ctx context.Context, org string, spec model.RepositorySpec) (*model.Repository, error) {
	f.createCalls++
	f.lastCreateOrg = org
	f.lastCreateSpec = spec
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createdRepo != nil {
		repo := *f.createdRepo
		return &repo, nil
	}
	return &model.Repository{
		Name:     spec.Name,
		FullName: org + "/" + spec.Name,
		Private:  spec.Private,
	}, nil
}

func (f *fakeGitHubClient) UpdateRepository(ctx context.Context, org, repo string, settings model.RepoSettings) (model.RepoSettings, error) {
	f.updateCalls++
	f.lastUpdate = settings
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updated != nil {
		return f.updated, nil
	}
	applied := model.RepoSettings{}
	for k, v := range settings {
		applied[k] = v
	}
	return applied, nil
}

func (f *fakeGitHubClient) AddCollaborator(ctx context.Context, org, repo, username, permission string) (bool, error) {
	f.addCalls++
	f.lastPermission = permission
	return f.invited, f.addErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
