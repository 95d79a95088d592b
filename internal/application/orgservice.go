package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// OrgService implements the listing operations: list_organizations and
// list_repositories.
type OrgService struct {
	operationCore
}

// NewOrgService creates an OrgService with the required collaborators.
func NewOrgService(client driven.GitHubClient, verifier *AccessVerifier, log *slog.Logger) *OrgService {
	return &OrgService{operationCore{client: client, verifier: verifier, log: log}}
}

// ListOrganizations lists the organizations the caller is a member of merged
// with the ones visible for the caller, keyed by login. An organization
// reported by both sources keeps both flags set; the second source never
// overwrites the first's membership flag.
//
// Requires scope read:org. The two listing calls run concurrently; ordering
// between them is irrelevant since the merge is keyed, not ordered by arrival.
func (s *OrgService) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	octx := operr.Context{Action: "list_organizations"}
	s.logOperation("list_organizations")

	if _, err := s.verifier.VerifyAuthAndScopes(ctx, []string{"read:org"}); err != nil {
		octx.AttemptedOp = operr.OpVerifyAuth
		return nil, s.fail(err, octx)
	}

	var member, visible []model.Organization
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		member, err = s.client.ListMemberOrganizations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		visible, err = s.client.ListVisibleOrganizations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		octx.AttemptedOp = "list_orgs"
		return nil, s.fail(err, octx)
	}

	return mergeOrganizations(member, visible), nil
}

// mergeOrganizations deduplicates the two listing sources by login, OR-ing
// the is_member / is_visible flags per entry. First-seen order is preserved:
// member organizations first, then visible-only ones.
func mergeOrganizations(member, visible []model.Organization) []model.Organization {
	merged := []model.Organization{}
	index := map[string]int{}

	for _, org := range member {
		org.IsMember = true
		index[org.Login] = len(merged)
		merged = append(merged, org)
	}
	for _, org := range visible {
		if i, ok := index[org.Login]; ok {
			merged[i].IsVisible = true
			continue
		}
		org.IsVisible = true
		index[org.Login] = len(merged)
		merged = append(merged, org)
	}

	return merged
}

// ListRepositories lists the repositories of an organization. Requires
// scopes read:org and repo. Every returned repository carries a usable
// clone_url: when the API omits one, it is synthesized from org and name.
func (s *OrgService) ListRepositories(ctx context.Context, org string) ([]model.Repository, error) {
	octx := operr.Context{Action: "list_repositories", Organization: org}
	s.logOperation("list_repositories", "organization", org)

	if org == "" {
		return nil, s.fail(operr.NewValidation("org is required", octx), octx)
	}

	if _, err := s.verifier.VerifyAuthAndScopes(ctx, []string{"read:org", "repo"}); err != nil {
		octx.AttemptedOp = operr.OpVerifyAuth
		return nil, s.fail(err, octx)
	}

	repos, err := s.client.ListRepositories(ctx, org)
	if err != nil {
		octx.AttemptedOp = "list_repos"
		return nil, s.fail(err, octx)
	}

	for i := range repos {
		if repos[i].CloneURL == "" {
			repos[i].CloneURL = cloneURL(org, repos[i].Name)
		}
	}

	s.log.Debug("operation succeeded", "action", "list_repositories", "organization", org, "count", len(repos))
	return repos, nil
}

// cloneURL synthesizes the canonical HTTPS clone URL for a repository.
func cloneURL(org, name string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", org, name)
}
