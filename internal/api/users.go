package api

import (
	"context"
	"net/http"
)

const usersPath = "/users/"

// CreateUser registers a user account.
func (c *Client) CreateUser(ctx context.Context, user UserCreate) (User, error) {
	var payload User
	if err := c.Request(ctx, http.MethodPost, usersPath, user, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// ListUsers retrieves every user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var payload []User
	if err := c.Request(ctx, http.MethodGet, usersPath, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
