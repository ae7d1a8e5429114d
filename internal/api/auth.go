package api

import (
	"context"
	"net/http"
)

// Register creates a new account and returns the new user id.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp registerResponse
	err := c.do(ctx, http.MethodPost, "/register", credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Login exchanges credentials for an opaque bearer token and installs it
// on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}
