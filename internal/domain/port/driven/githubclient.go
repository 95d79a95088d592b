package driven

import (
	"context"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
)

// GitHubClient defines the driven port for the GitHub API. Implementations
// must wrap every remote failure into *operr.RemoteError so the application
// layer can classify it without inspecting transport-specific error types.
type GitHubClient interface {
	// VerifyIdentity returns the authenticated user and the OAuth scopes
	// granted to the token, read fresh on every call.
	VerifyIdentity(ctx context.Context) (*model.Identity, error)

	// ListMemberOrganizations lists organizations the authenticated user is
	// a member of.
	ListMemberOrganizations(ctx context.Context) ([]model.Organization, error)
	// ListVisibleOrganizations lists organizations publicly visible for the
	// authenticated user.
	ListVisibleOrganizations(ctx context.Context) ([]model.Organization, error)

	// ListRepositories lists the repositories of an organization.
	ListRepositories(ctx context.Context, org string) ([]model.Repository, error)
	// CreateRepository creates a repository in an organization.
	CreateRepository(ctx context.Context, org string, spec model.RepositorySpec) (*model.Repository, error)
	// UpdateRepository applies the given settings and returns the settings
	// as reported back by the API.
	UpdateRepository(ctx context.Context, org, repo string, settings model.RepoSettings) (model.RepoSettings, error)

	// AddCollaborator adds a user to a repository with the given permission.
	// Invited reports whether GitHub created a pending invitation rather
	// than attaching the user directly.
	AddCollaborator(ctx context.Context, org, repo, username, permission string) (invited bool, err error)
}
