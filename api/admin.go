package api

import (
	"context"
	"net/http"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// AdminStats returns the dashboard summary counters.
func (c *Client) AdminStats(ctx context.Context) (*core.AdminStats, error) {
	const key = "/admin/stats"
	if v, ok := c.cachedGet(key); ok {
		if stats, ok := v.(*core.AdminStats); ok {
			return stats, nil
		}
	}

	var stats core.AdminStats
	if err := c.do(ctx, http.MethodGet, key, nil, &stats); err != nil {
		return nil, err
	}
	c.cacheSet(groupAdmin, key, &stats)
	return &stats, nil
}

// UsersResponse is the response from the admin user list.
type UsersResponse struct {
	Users []core.User `json:"users"`
	Total int         `json:"total"`
}

// ListUsers returns all users. Requires an admin role; the backend
// enforces it.
func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	const key = "/admin/users"
	if v, ok := c.cachedGet(key); ok {
		if users, ok := v.([]core.User); ok {
			return users, nil
		}
	}

	var resp UsersResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupAdmin, key, resp.Users)
	return resp.Users, nil
}

// ProjectsResponse is the response from listing projects.
type ProjectsResponse struct {
	Projects []core.Project `json:"projects"`
	Total    int            `json:"total"`
}

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]core.Project, error) {
	const key = "/admin/projects"
	if v, ok := c.cachedGet(key); ok {
		if projects, ok := v.([]core.Project); ok {
			return projects, nil
		}
	}

	var resp ProjectsResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupAdmin, key, resp.Projects)
	return resp.Projects, nil
}

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*core.Project, error) {
	var project core.Project
	if err := c.do(ctx, http.MethodPost, "/admin/projects", req, &project); err != nil {
		return nil, err
	}
	c.invalidate(groupAdmin)
	return &project, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/projects/"+projectID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupAdmin)
	return nil
}

// DepartmentsResponse is the response from listing departments.
type DepartmentsResponse struct {
	Departments []core.Department `json:"departments"`
	Total       int               `json:"total"`
}

// ListDepartments returns all departments.
func (c *Client) ListDepartments(ctx context.Context) ([]core.Department, error) {
	const key = "/admin/departments"
	if v, ok := c.cachedGet(key); ok {
		if departments, ok := v.([]core.Department); ok {
			return departments, nil
		}
	}

	var resp DepartmentsResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupAdmin, key, resp.Departments)
	return resp.Departments, nil
}

// CreateDepartment creates a department.
func (c *Client) CreateDepartment(ctx context.Context, name string) (*core.Department, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}

	var dept core.Department
	if err := c.do(ctx, http.MethodPost, "/admin/departments", body, &dept); err != nil {
		return nil, err
	}
	c.invalidate(groupAdmin)
	return &dept, nil
}

// DeleteDepartment deletes a department.
func (c *Client) DeleteDepartment(ctx context.Context, departmentID string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/departments/"+departmentID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupAdmin)
	return nil
}
