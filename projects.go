package mailtrap

import (
	"context"
	"strconv"
)

// Project is the sandbox project resource.
type Project struct {
	ID          int64             `json:"id,omitempty"`
	Name        string            `json:"name,omitempty"`
	ShareLinks  map[string]string `json:"share_links,omitempty"`
	Inboxes     []map[string]any  `json:"inboxes,omitempty"`
	Permissions map[string]any    `json:"permissions,omitempty"`
}

// ProjectsAPI is a thin wrapper over the account projects resource.
type ProjectsAPI struct {
	AccountID int64

	client ResourceClient
}

// NewProjectsAPI creates a projects API for the given account.
func NewProjectsAPI(accountID int64, client ResourceClient) *ProjectsAPI {
	return &ProjectsAPI{AccountID: accountID, client: client}
}

// List retrieves all projects.
func (a *ProjectsAPI) List(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := a.client.Get(ctx, accountPath(a.AccountID, "projects"), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Get retrieves a project.
func (a *ProjectsAPI) Get(ctx context.Context, projectID int64) (*Project, error) {
	var project Project
	if err := a.client.Get(ctx, a.path(projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Create creates a new project.
func (a *ProjectsAPI) Create(ctx context.Context, name string) (*Project, error) {
	var project Project
	body := map[string]any{"project": map[string]any{"name": name}}
	if err := a.client.Post(ctx, accountPath(a.AccountID, "projects"), body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update renames a project.
func (a *ProjectsAPI) Update(ctx context.Context, projectID int64, name string) (*Project, error) {
	var project Project
	body := map[string]any{"project": map[string]any{"name": name}}
	if err := a.client.Patch(ctx, a.path(projectID), body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project.
func (a *ProjectsAPI) Delete(ctx context.Context, projectID int64) error {
	return a.client.Delete(ctx, a.path(projectID))
}

func (a *ProjectsAPI) path(projectID int64) string {
	return resourcePath(a.AccountID, "projects", strconv.FormatInt(projectID, 10))
}
