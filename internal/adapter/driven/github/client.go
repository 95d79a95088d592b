// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// VerifyIdentity fetches the authenticated user and parses the granted OAuth
// scopes from the X-OAuth-Scopes response header. Scopes are re-read on every
// call; nothing is cached between invocations.
func (c *Client) VerifyIdentity(ctx context.Context) (*model.Identity, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, wrapRemote(err)
	}

	logRateLimit(resp, "user", 0, 1)

	return &model.Identity{
		Username: user.GetLogin(),
		Scopes:   parseScopes(resp.Header.Get("X-OAuth-Scopes")),
	}, nil
}

// ListMemberOrganizations lists organizations the authenticated user belongs to.
// It handles pagination automatically.
func (c *Client) ListMemberOrganizations(ctx context.Context) ([]model.Organization, error) {
	return c.listOrganizations(ctx, "", "member-orgs")
}

// ListVisibleOrganizations lists the authenticated user's publicly visible
// organization memberships.
func (c *Client) ListVisibleOrganizations(ctx context.Context) ([]model.Organization, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, wrapRemote(err)
	}

	logRateLimit(resp, "user", 0, 1)

	return c.listOrganizations(ctx, user.GetLogin(), "visible-orgs")
}

// listOrganizations pages through /user/orgs (user == "") or /users/{user}/orgs.
func (c *Client) listOrganizations(ctx context.Context, user, endpoint string) ([]model.Organization, error) {
	opts := &gh.ListOptions{PerPage: 100}
	orgs := []model.Organization{}

	for {
		page, resp, err := c.gh.Organizations.List(ctx, user, opts)
		if err != nil {
			return nil, wrapRemote(err)
		}

		logRateLimit(resp, endpoint, opts.Page, len(page))

		for _, o := range page {
			orgs = append(orgs, mapOrganization(o))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return orgs, nil
}

// ListRepositories retrieves all repositories of an organization.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) ListRepositories(ctx context.Context, org string) ([]model.Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	repos := []model.Repository{}

	for {
		page, resp, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, wrapRemote(err)
		}

		logRateLimit(resp, org+"/repos", opts.Page, len(page))

		for _, r := range page {
			repos = append(repos, mapRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// CreateRepository creates a repository in the given organization.
func (c *Client) CreateRepository(ctx context.Context, org string, spec model.RepositorySpec) (*model.Repository, error) {
	repo := &gh.Repository{
		Name:     gh.Ptr(spec.Name),
		Private:  gh.Ptr(spec.Private),
		AutoInit: gh.Ptr(spec.AutoInit),
	}
	if spec.Description != "" {
		repo.Description = gh.Ptr(spec.Description)
	}

	created, resp, err := c.gh.Repositories.Create(ctx, org, repo)
	if err != nil {
		return nil, wrapRemote(err)
	}

	logRateLimit(resp, org+"/create", 0, 1)

	mapped := mapRepository(created)
	return &mapped, nil
}

// UpdateRepository applies the given boolean settings via the repository edit
// endpoint and echoes back the settings as reported by the API response.
func (c *Client) UpdateRepository(ctx context.Context, org, repo string, settings model.RepoSettings) (model.RepoSettings, error) {
	edit := &gh.Repository{}
	for key, value := range settings {
		switch key {
		case "has_issues":
			edit.HasIssues = gh.Ptr(value)
		case "has_projects":
			edit.HasProjects = gh.Ptr(value)
		case "has_wiki":
			edit.HasWiki = gh.Ptr(value)
		case "allow_squash_merge":
			edit.AllowSquashMerge = gh.Ptr(value)
		case "allow_merge_commit":
			edit.AllowMergeCommit = gh.Ptr(value)
		case "allow_rebase_merge":
			edit.AllowRebaseMerge = gh.Ptr(value)
		}
	}

	updated, resp, err := c.gh.Repositories.Edit(ctx, org, repo, edit)
	if err != nil {
		return nil, wrapRemote(err)
	}

	logRateLimit(resp, org+"/"+repo+"/edit", 0, 1)

	applied := model.RepoSettings{}
	for key := range settings {
		switch key {
		case "has_issues":
			applied[key] = updated.GetHasIssues()
		case "has_projects":
			applied[key] = updated.GetHasProjects()
		case "has_wiki":
			applied[key] = updated.GetHasWiki()
		case "allow_squash_merge":
			applied[key] = updated.GetAllowSquashMerge()
		case "allow_merge_commit":
			applied[key] = updated.GetAllowMergeCommit()
		case "allow_rebase_merge":
			applied[key] = updated.GetAllowRebaseMerge()
		}
	}

	return applied, nil
}

// AddCollaborator adds a user to a repository. GitHub answers 201 with an
// invitation object for users outside the repository, or 204 when the user
// was attached directly; invited distinguishes the two. go-github decodes a
// non-nil invitation either way, so the status code is the discriminator.
func (c *Client) AddCollaborator(ctx context.Context, org, repo, username, permission string) (bool, error) {
	opts := &gh.RepositoryAddCollaboratorOptions{Permission: permission}

	_, resp, err := c.gh.Repositories.AddCollaborator(ctx, org, repo, username, opts)
	if err != nil {
		return false, wrapRemote(err)
	}

	logRateLimit(resp, org+"/"+repo+"/collaborators", 0, 1)

	return resp.StatusCode == http.StatusCreated, nil
}

// mapOrganization converts a go-github Organization to a domain model
// Organization. Membership flags are assigned by the caller that knows which
// listing source produced the entry.
func mapOrganization(o *gh.Organization) model.Organization {
	return model.Organization{
		Login:       o.GetLogin(),
		ID:          o.GetID(),
		Description: o.GetDescription(),
	}
}

// mapRepository converts a go-github Repository to a domain model Repository.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(r *gh.Repository) model.Repository {
	return model.Repository{
		ID:            r.GetID(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Private:       r.GetPrivate(),
		Visibility:    r.GetVisibility(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
		CloneURL:      r.GetCloneURL(),
	}
}

// parseScopes splits the comma-separated X-OAuth-Scopes header value into a
// flat scope set. A missing or empty header yields an empty (non-nil) slice:
// fine-grained tokens report no classic scopes at all.
func parseScopes(header string) []string {
	scopes := []string{}
	for _, s := range strings.Split(header, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset", resp.Rate.Reset,
		)
	}
}
