package api

import (
	"context"
	"net/http"

	"github.com/plsfundme/portal/internal/model"
)

type LoginResult struct {
	AccessToken string     `json:"access_token"`
	Role        model.Role `json:"role"`
}

type Registration struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. NGO accounts need admin approval before they
// can log in.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", reg, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
