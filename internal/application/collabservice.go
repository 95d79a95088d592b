package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/model"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/port/driven"
)

// validPermissions are the accepted collaborator permission levels.
var validPermissions = []string{"pull", "push", "admin"}

// CollaboratorService implements the add_collaborator operation.
type CollaboratorService struct {
	operationCore
}

// NewCollaboratorService creates a CollaboratorService with the required
// collaborators.
func NewCollaboratorService(client driven.GitHubClient, verifier *AccessVerifier, log *slog.Logger) *CollaboratorService {
	return &CollaboratorService{operationCore{client: client, verifier: verifier, log: log}}
}

// AddCollaboratorInput is the caller-supplied input for add_collaborator.
type AddCollaboratorInput struct {
	Org        string
	Repo       string
	Username   string
	Permission string
}

// AddCollaborator grants a user access to a repository. Permission must be
// one of pull, push or admin; any other value is rejected before the access
// check. Requires scope repo. The result reports whether GitHub invited the
// user or attached them directly, plus the derived permission matrix.
func (s *CollaboratorService) AddCollaborator(ctx context.Context, input AddCollaboratorInput) (*model.CollaboratorResult, error) {
	octx := operr.Context{
		Action:       "add_collaborator",
		Organization: input.Org,
		Repository:   &operr.RepoRef{Org: input.Org, Name: input.Repo},
		Collaborator: &operr.CollaboratorRef{Username: input.Username, Permission: input.Permission},
	}
	s.logOperation("add_collaborator",
		"organization", input.Org,
		"repository", input.Repo,
		"username", input.Username,
		"permission", input.Permission,
	)

	if input.Org == "" {
		return nil, s.fail(operr.NewValidation("org is required", octx), octx)
	}
	if input.Repo == "" {
		return nil, s.fail(operr.NewValidation("repo is required", octx), octx)
	}
	if input.Username == "" {
		return nil, s.fail(operr.NewValidation("username is required", octx), octx)
	}
	if !isValidPermission(input.Permission) {
		return nil, s.fail(operr.NewValidation(fmt.Sprintf(
			"invalid permission %q: must be one of pull, push, admin", input.Permission,
		), octx), octx)
	}

	if _, err := s.verifier.VerifyAuthAndScopes(ctx, []string{"repo"}); err != nil {
		octx.AttemptedOp = operr.OpVerifyAuth
		return nil, s.fail(err, octx)
	}

	invited, err := s.client.AddCollaborator(ctx, input.Org, input.Repo, input.Username, input.Permission)
	if err != nil {
		octx.AttemptedOp = "add_collaborator"
		return nil, s.fail(err, octx)
	}

	status := "added"
	if invited {
		status = "invited"
	}

	s.log.Debug("operation succeeded", "action", "add_collaborator",
		"repository", input.Org+"/"+input.Repo, "username", input.Username, "status", status)

	return &model.CollaboratorResult{
		Username:    input.Username,
		Repository:  input.Org + "/" + input.Repo,
		Permission:  input.Permission,
		Status:      status,
		Permissions: model.MatrixForPermission(input.Permission),
	}, nil
}

func isValidPermission(permission string) bool {
	for _, p := range validPermissions {
		if permission == p {
			return true
		}
	}
	return false
}
