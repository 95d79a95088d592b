package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// allowedSettingKeys is the fixed allow-list of repository toggles accepted
// by update_repository_settings, in the order they are reported in messages.
var allowedSettingKeys = []string{
	"has_issues",
	"has_projects",
	"has_wiki",
	"allow_squash_merge",
	"allow_merge_commit",
	"allow_rebase_merge",
}

// RepoService implements the mutating repository operations:
// create_repository and update_repository_settings.
type RepoService struct {
	operationCore
}

// NewRepoService creates a RepoService with the required collaborators.
func NewRepoService(client driven.GitHubClient, verifier *AccessVerifier, log *slog.Logger) *RepoService {
	return &RepoService{operationCore{client: client, verifier: verifier, log: log}}
}

// CreateRepositoryInput is the caller-supplied input for create_repository.
type CreateRepositoryInput struct {
	Org         string
	Name        string
	Description string
	Private     bool
}

// CreateRepository creates a repository in an organization, initialized with
// a README. Requires scope repo. The shaped result always carries an explicit
// visibility: when the API omits one, it is derived from the private flag.
func (s *RepoService) CreateRepository(ctx context.Context, input CreateRepositoryInput) (*model.Repository, error) {
	octx := operr.Context{
		Action:       "create_repository",
		Organization: input.Org,
		Repository:   &operr.RepoRef{Org: input.Org, Name: input.Name},
	}
	s.logOperation("create_repository", "organization", input.Org, "name", input.Name, "private", input.Private)

	if input.Org == "" {
		return nil, s.fail(operr.NewValidation("org is required", octx), octx)
	}
	if input.Name == "" {
		return nil, s.fail(operr.NewValidation("name is required", octx), octx)
	}

	if _, err := s.verifier.VerifyAuthAndScopes(ctx, []string{"repo"}); err != nil {
		octx.AttemptedOp = operr.OpVerifyAuth
		return nil, s.fail(err, octx)
	}

	repo, err := s.client.CreateRepository(ctx, input.Org, model.RepositorySpec{
		Name:        input.Name,
		Description: input.Description,
		Private:     input.Private,
		AutoInit:    true,
	})
	if err != nil {
		octx.AttemptedOp = "create_repo"
		return nil, s.fail(err, octx)
	}

	if repo.Visibility == "" {
		if repo.Private {
			repo.Visibility = "private"
		} else {
			repo.Visibility = "public"
		}
	}
	if repo.CloneURL == "" {
		repo.CloneURL = cloneURL(input.Org, repo.Name)
	}

	s.log.Debug("operation succeeded", "action", "create_repository", "repository", repo.FullName)
	return repo, nil
}

// UpdateRepositorySettingsInput is the caller-supplied input for
// update_repository_settings. Settings is kept untyped so that unknown keys
// and non-boolean values are rejected by validation instead of being dropped
// or coerced during decoding.
type UpdateRepositorySettingsInput struct {
	Org      string
	Repo     string
	Settings map[string]any
}

// UpdateRepositorySettings applies boolean repository toggles. Every key must
// belong to the fixed allow-list and every value must be a boolean; offending
// keys are rejected by name before any access check or remote call. Requires
// scope repo. The result contains exactly the keys that were supplied.
func (s *RepoService) UpdateRepositorySettings(ctx context.Context, input UpdateRepositorySettingsInput) (*model.SettingsUpdateResult, error) {
	octx := operr.Context{
		Action:       "update_repository_settings",
		Organization: input.Org,
		Repository:   &operr.RepoRef{Org: input.Org, Name: input.Repo},
		Settings:     input.Settings,
	}
	s.logOperation("update_repository_settings", "organization", input.Org, "repository", input.Repo)

	requested, verr := validateSettings(input, octx)
	if verr != nil {
		return nil, s.fail(verr, octx)
	}

	if _, err := s.verifier.VerifyAuthAndScopes(ctx, []string{"repo"}); err != nil {
		octx.AttemptedOp = operr.OpVerifyAuth
		return nil, s.fail(err, octx)
	}

	applied, err := s.client.UpdateRepository(ctx, input.Org, input.Repo, requested)
	if err != nil {
		octx.AttemptedOp = "update_repo"
		return nil, s.fail(err, octx)
	}

	// Project the response onto the supplied keys: the result never
	// introduces or drops a key relative to the input.
	settings := model.RepoSettings{}
	for key, want := range requested {
		if got, ok := applied[key]; ok {
			settings[key] = got
		} else {
			settings[key] = want
		}
	}

	s.log.Debug("operation succeeded", "action", "update_repository_settings",
		"repository", input.Org+"/"+input.Repo, "keys", len(settings))

	return &model.SettingsUpdateResult{
		Organization: input.Org,
		Repository:   input.Repo,
		Settings:     settings,
	}, nil
}

// validateSettings checks the update input and converts the raw settings map
// into typed boolean settings. Keys are inspected in sorted order so the
// first offender reported is deterministic.
func validateSettings(input UpdateRepositorySettingsInput, octx operr.Context) (model.RepoSettings, *operr.Error) {
	if input.Org == "" {
		return nil, operr.NewValidation("org is required", octx)
	}
	if input.Repo == "" {
		return nil, operr.NewValidation("repo is required", octx)
	}
	if len(input.Settings) == 0 {
		return nil, operr.NewValidation("settings must be a non-empty object", octx)
	}

	keys := make([]string, 0, len(input.Settings))
	for key := range input.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var unknown []string
	for _, key := range keys {
		if !isAllowedSettingKey(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return nil, operr.NewValidation(fmt.Sprintf(
			"unknown settings keys: %s (allowed: %s)",
			strings.Join(unknown, ", "),
			strings.Join(allowedSettingKeys, ", "),
		), octx)
	}

	requested := model.RepoSettings{}
	for _, key := range keys {
		value, ok := input.Settings[key].(bool)
		if !ok {
			return nil, operr.NewValidation(fmt.Sprintf("settings key %q must be a boolean", key), octx)
		}
		requested[key] = value
	}

	return requested, nil
}

func isAllowedSettingKey(key string) bool {
	for _, allowed := range allowedSettingKeys {
		if key == allowed {
			return true
		}
	}
	return false
}
