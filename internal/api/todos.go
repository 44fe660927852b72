package api

import (
	"context"
	"fmt"
	"net/http"
)

// Todo represents a task belonging to exactly one team
type Todo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	TeamID    string `json:"teamId"`
}

// TodosResponse represents a team-scoped todo listing
type TodosResponse struct {
	Message string `json:"message"`
	Todos   []Todo `json:"todos"`
}

// TodoResponse represents a single todo with the backend's message envelope
type TodoResponse struct {
	Message string `json:"message"`
	Todo    Todo   `json:"todo"`
}

// CreateTodoRequest carries the fields for a new todo
type CreateTodoRequest struct {
	Title  string `json:"title"`
	TeamID string `json:"teamId"`
}

// UpdateTodoRequest carries a todo's mutable fields. Completed is a
// pointer so a PATCH can rename without touching completion state.
type UpdateTodoRequest struct {
	Title     string `json:"title,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
	TeamID    string `json:"teamId"`
}

// ListTodos retrieves the todos of a team
func (c *Client) ListTodos(ctx context.Context, teamID string) ([]Todo, error) {
	path := fmt.Sprintf("/todo/%s", teamID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var todosResp TodosResponse
	if err := parseResponse(resp, &todosResp); err != nil {
		return nil, err
	}

	return todosResp.Todos, nil
}

// CreateTodo creates a todo in a team
func (c *Client) CreateTodo(ctx context.Context, title, teamID string) (*Todo, error) {
	req := CreateTodoRequest{Title: title, TeamID: teamID}

	resp, err := c.doRequest(ctx, http.MethodPost, "/todo", req)
	if err != nil {
		return nil, err
	}

	var todoResp TodoResponse
	if err := parseResponse(resp, &todoResp); err != nil {
		return nil, err
	}

	return &todoResp.Todo, nil
}

// UpdateTodo patches a todo's title and/or completion state
func (c *Client) UpdateTodo(ctx context.Context, todoID string, req UpdateTodoRequest) (*Todo, error) {
	path := fmt.Sprintf("/todo/%s", todoID)
	resp, err := c.doRequest(ctx, http.MethodPatch, path, req)
	if err != nil {
		return nil, err
	}

	var todoResp TodoResponse
	if err := parseResponse(resp, &todoResp); err != nil {
		return nil, err
	}

	return &todoResp.Todo, nil
}

// DeleteTodo deletes a todo
func (c *Client) DeleteTodo(ctx context.Context, todoID string) error {
	path := fmt.Sprintf("/todo/%s", todoID)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
