// Package backend is the client for the remote console API. Every call is a
// single request/response round-trip answering with the {ok, message, data}
// envelope. Nothing is retried: the caller re-triggers the action.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"admin-console/internal/apperr"
	"admin-console/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: client, log: log}
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (models.Envelope[T], error) {
	var env models.Envelope[T]

	req := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		// ответ пришёл, но не разобрался — это проблема бэкенда, а не сети
		if resp != nil && resp.RawResponse != nil {
			c.log.Error("backend returned unreadable body",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status_code", resp.StatusCode()),
				zap.Error(err),
			)
			return env, &apperr.BackendError{Status: resp.StatusCode(), Message: "invalid backend response"}
		}
		c.log.Error("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return env, &apperr.TransportError{Op: method + " " + path, Err: err}
	}

	if resp.IsError() || !env.OK {
		c.log.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", env.Message),
		)
		return env, &apperr.BackendError{Status: resp.StatusCode(), Message: env.Message}
	}

	return env, nil
}

type nameBody struct {
	Name string `json:"name"`
}

type attachBody struct {
	PermissionNames []string `json:"permissionNames"`
}

func (c *Client) ListRoles(ctx context.Context) ([]models.Role, error) {
	env, err := call[[]models.Role](ctx, c, http.MethodGet, "/api/roles", nil)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return env.Data, nil
}

func (c *Client) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	env, err := call[[]models.Permission](ctx, c, http.MethodGet, "/api/permissions", nil)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return env.Data, nil
}

func (c *Client) CreateRole(ctx context.Context, name string) (string, error) {
	env, err := call[any](ctx, c, http.MethodPost, "/api/roles", nameBody{Name: name})
	if err != nil {
		return "", fmt.Errorf("create role: %w", err)
	}
	return env.Message, nil
}

func (c *Client) DeleteRole(ctx context.Context, roleID int) (string, error) {
	env, err := call[any](ctx, c, http.MethodDelete, fmt.Sprintf("/api/roles/%d", roleID), nil)
	if err != nil {
		return "", fmt.Errorf("delete role %d: %w", roleID, err)
	}
	return env.Message, nil
}

func (c *Client) CreatePermission(ctx context.Context, name string) (string, error) {
	env, err := call[any](ctx, c, http.MethodPost, "/api/permissions", nameBody{Name: name})
	if err != nil {
		return "", fmt.Errorf("create permission: %w", err)
	}
	return env.Message, nil
}

func (c *Client) AttachPermissions(ctx context.Context, roleID int, names []string) (models.Role, string, error) {
	path := fmt.Sprintf("/api/roles/%d/permission", roleID)
	env, err := call[models.Role](ctx, c, http.MethodPost, path, attachBody{PermissionNames: names})
	if err != nil {
		return models.Role{}, "", fmt.Errorf("attach permissions to role %d: %w", roleID, err)
	}
	return env.Data, env.Message, nil
}

func (c *Client) DetachPermission(ctx context.Context, roleID int, name string) (string, error) {
	path := fmt.Sprintf("/api/roles/%d/permission/%s", roleID, url.PathEscape(name))
	env, err := call[any](ctx, c, http.MethodDelete, path, nil)
	if err != nil {
		return "", fmt.Errorf("detach permission %q from role %d: %w", name, roleID, err)
	}
	return env.Message, nil
}

func (c *Client) ListUpdateRequests(ctx context.Context) ([]models.Employee, error) {
	env, err := call[[]models.Employee](ctx, c, http.MethodGet, "/api/requests", nil)
	if err != nil {
		return nil, fmt.Errorf("list update requests: %w", err)
	}
	return env.Data, nil
}

func (c *Client) AcceptRequest(ctx context.Context, update models.EmployeeUpdate) (string, error) {
	env, err := call[any](ctx, c, http.MethodPut, fmt.Sprintf("/api/requests/%d", update.ID), update)
	if err != nil {
		return "", fmt.Errorf("accept request %d: %w", update.ID, err)
	}
	return env.Message, nil
}

func (c *Client) RejectRequest(ctx context.Context, requestID int) (string, error) {
	env, err := call[any](ctx, c, http.MethodDelete, fmt.Sprintf("/api/requests/%d", requestID), nil)
	if err != nil {
		return "", fmt.Errorf("reject request %d: %w", requestID, err)
	}
	return env.Message, nil
}
