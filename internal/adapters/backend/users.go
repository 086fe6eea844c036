package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"troffee-admin-console/internal/domain/user"
)

// ListUsers retrieves a page of users
func (c *Client) ListUsers(ctx context.Context, query user.ListQuery) (*user.Page, error) {
	query = query.Normalize()

	params := url.Values{}
	params.Set("search", query.Search)
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("pageSize", strconv.Itoa(query.PageSize))

	var page user.Page
	err := c.do(ctx, request{
		operation: "list_users",
		method:    http.MethodGet,
		path:      "/admin/users?" + params.Encode(),
	}, &page)
	if err != nil {
		return nil, err
	}
	if page.Users == nil {
		page.Users = []user.User{}
	}
	return &page, nil
}

// UpdateUser updates profile fields of a user
func (c *Client) UpdateUser(ctx context.Context, id string, update user.Update) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to encode user update: %w", err)
	}

	return c.do(ctx, request{
		operation:   "update_user",
		method:      http.MethodPut,
		path:        "/admin/users/" + url.PathEscape(id),
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, nil)
}

// SuspendUser suspends a user account
func (c *Client) SuspendUser(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "suspend_user",
		method:    http.MethodPut,
		path:      "/admin/users/" + url.PathEscape(id) + "/suspend",
	}, nil)
}

// UnsuspendUser lifts a suspension
func (c *Client) UnsuspendUser(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "unsuspend_user",
		method:    http.MethodPut,
		path:      "/admin/users/" + url.PathEscape(id) + "/unsuspend",
	}, nil)
}
