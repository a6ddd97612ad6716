package api

import (
	"context"
	"net/http"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// AgentTypesResponse is the response from listing marketplace agent
// types.
type AgentTypesResponse struct {
	AgentTypes []core.AgentType `json:"agent_types"`
	Total      int              `json:"total"`
}

// ListAgentTypes returns the marketplace catalog.
func (c *Client) ListAgentTypes(ctx context.Context) ([]core.AgentType, error) {
	const key = "/agent-types"
	if v, ok := c.cachedGet(key); ok {
		if types, ok := v.([]core.AgentType); ok {
			return types, nil
		}
	}

	var resp AgentTypesResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupAgents, key, resp.AgentTypes)
	return resp.AgentTypes, nil
}

// CreateAgentTypeRequest is the request body for publishing an agent
// type to the marketplace. ConfigSchema is a JSON-schema-shaped
// object built with the agent package's property builders.
type CreateAgentTypeRequest struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Version      string                 `json:"version"`
	ConfigSchema map[string]interface{} `json:"config_schema,omitempty"`
}

// CreateAgentType publishes an agent type.
func (c *Client) CreateAgentType(ctx context.Context, req CreateAgentTypeRequest) (*core.AgentType, error) {
	var agentType core.AgentType
	if err := c.do(ctx, http.MethodPost, "/agent-types", req, &agentType); err != nil {
		return nil, err
	}
	c.invalidate(groupAgents)
	return &agentType, nil
}

// AgentInstancesResponse is the response from listing installed
// agent instances.
type AgentInstancesResponse struct {
	AgentInstances []core.AgentInstance `json:"agent_instances"`
	Total          int                  `json:"total"`
}

// ListAgentInstances returns the installed agents.
func (c *Client) ListAgentInstances(ctx context.Context) ([]core.AgentInstance, error) {
	const key = "/agent-instances"
	if v, ok := c.cachedGet(key); ok {
		if instances, ok := v.([]core.AgentInstance); ok {
			return instances, nil
		}
	}

	var resp AgentInstancesResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupAgents, key, resp.AgentInstances)
	return resp.AgentInstances, nil
}

// CreateAgentInstanceRequest is the request body for installing an
// agent. Config must satisfy the agent type's config schema; the
// backend validates it.
type CreateAgentInstanceRequest struct {
	AgentTypeID string                 `json:"agent_type_id"`
	Name        string                 `json:"name"`
	RoomID      string                 `json:"chat_room_id,omitempty"`
	ProjectID   string                 `json:"project_id,omitempty"`
	Config      map[string]interface{} `json:"config,omitempty"`
}

// CreateAgentInstance installs an agent.
func (c *Client) CreateAgentInstance(ctx context.Context, req CreateAgentInstanceRequest) (*core.AgentInstance, error) {
	var inst core.AgentInstance
	if err := c.do(ctx, http.MethodPost, "/agent-instances", req, &inst); err != nil {
		return nil, err
	}
	c.invalidate(groupAgents)
	return &inst, nil
}

// UpdateAgentInstanceRequest is the request body for reconfiguring an
// installed agent.
type UpdateAgentInstanceRequest struct {
	Name    string                 `json:"name,omitempty"`
	Config  map[string]interface{} `json:"config,omitempty"`
	Enabled *bool                  `json:"enabled,omitempty"`
}

// UpdateAgentInstance reconfigures an installed agent.
func (c *Client) UpdateAgentInstance(ctx context.Context, instanceID string, req UpdateAgentInstanceRequest) (*core.AgentInstance, error) {
	var inst core.AgentInstance
	if err := c.do(ctx, http.MethodPatch, "/agent-instances/"+instanceID, req, &inst); err != nil {
		return nil, err
	}
	c.invalidate(groupAgents)
	return &inst, nil
}

// DeleteAgentInstance uninstalls an agent.
func (c *Client) DeleteAgentInstance(ctx context.Context, instanceID string) error {
	if err := c.do(ctx, http.MethodDelete, "/agent-instances/"+instanceID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupAgents)
	return nil
}
