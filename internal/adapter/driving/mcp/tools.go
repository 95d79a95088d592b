package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ericfisherdev/repoadmin-mcp/internal/application"
)

// ToolDef pairs a tool with its handler.
type ToolDef struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

func registerRepoTools(svcs Services) []ToolDef {
	return []ToolDef{
		{
			Tool: mcp.NewTool("list_organizations",
				mcp.WithDescription("List GitHub organizations for the authenticated user, merging membership and visibility information"),
			),
			Handler: listOrganizationsHandler(svcs.Orgs),
		},
		{
			Tool: mcp.NewTool("list_repositories",
				mcp.WithDescription("List all repositories of an organization"),
				mcp.WithString("org", mcp.Required(), mcp.Description("Organization login")),
			),
			Handler: listRepositoriesHandler(svcs.Orgs),
		},
		{
			Tool: mcp.NewTool("create_repository",
				mcp.WithDescription("Create a repository in an organization, initialized with a README"),
				mcp.WithString("org", mcp.Required(), mcp.Description("Organization login")),
				mcp.WithString("name", mcp.Required(), mcp.Description("Repository name")),
				mcp.WithString("description", mcp.Description("Repository description")),
				mcp.WithBoolean("private", mcp.Description("Create as private (default false)")),
			),
			Handler: createRepositoryHandler(svcs.Repos),
		},
		{
			Tool: mcp.NewTool("add_collaborator",
				mcp.WithDescription("Add a collaborator to a repository with a given permission level"),
				mcp.WithString("org", mcp.Required(), mcp.Description("Organization login")),
				mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
				mcp.WithString("username", mcp.Required(), mcp.Description("User to add")),
				mcp.WithString("permission", mcp.Required(), mcp.Enum("pull", "push", "admin"),
					mcp.Description("Permission level: pull, push, or admin")),
			),
			Handler: addCollaboratorHandler(svcs.Collaborators),
		},
		{
			Tool: mcp.NewTool("update_repository_settings",
				mcp.WithDescription("Update boolean repository settings (has_issues, has_projects, has_wiki, allow_squash_merge, allow_merge_commit, allow_rebase_merge)"),
				mcp.WithString("org", mcp.Required(), mcp.Description("Organization login")),
				mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
				mcp.WithObject("settings", mcp.Required(), mcp.Description("Settings to apply; every value must be a boolean")),
			),
			Handler: updateRepositorySettingsHandler(svcs.Repos),
		},
	}
}

func listOrganizationsHandler(svc *application.OrgService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		orgs, err := svc.ListOrganizations(ctx)
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(map[string]any{
			"organizations": orgs,
			"count":         len(orgs),
		}), nil
	}
}

func listRepositoriesHandler(svc *application.OrgService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		org, verr := requireString(args, "org", "list_repositories")
		if verr != nil {
			return errorResult(verr), nil
		}

		repos, err := svc.ListRepositories(ctx, org)
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(map[string]any{
			"organization": org,
			"repositories": repos,
			"count":        len(repos),
		}), nil
	}
}

func createRepositoryHandler(svc *application.RepoService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		action := "create_repository"

		org, verr := requireString(args, "org", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		name, verr := requireString(args, "name", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		description, verr := optionalString(args, "description", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		private, verr := optionalBool(args, "private", action)
		if verr != nil {
			return errorResult(verr), nil
		}

		repo, err := svc.CreateRepository(ctx, application.CreateRepositoryInput{
			Org:         org,
			Name:        name,
			Description: description,
			Private:     private,
		})
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(repo), nil
	}
}

func addCollaboratorHandler(svc *application.CollaboratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		action := "add_collaborator"

		org, verr := requireString(args, "org", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		repo, verr := requireString(args, "repo", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		username, verr := requireString(args, "username", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		permission, verr := requireString(args, "permission", action)
		if verr != nil {
			return errorResult(verr), nil
		}

		result, err := svc.AddCollaborator(ctx, application.AddCollaboratorInput{
			Org:        org,
			Repo:       repo,
			Username:   username,
			Permission: permission,
		})
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(result), nil
	}
}

func updateRepositorySettingsHandler(svc *application.RepoService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		action := "update_repository_settings"

		org, verr := requireString(args, "org", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		repo, verr := requireString(args, "repo", action)
		if verr != nil {
			return errorResult(verr), nil
		}
		settings, verr := objectArg(args, "settings", action)
		if verr != nil {
			return errorResult(verr), nil
		}

		result, err := svc.UpdateRepositorySettings(ctx, application.UpdateRepositorySettingsInput{
			Org:      org,
			Repo:     repo,
			Settings: settings,
		})
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(result), nil
	}
}
