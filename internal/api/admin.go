package api

import (
	"context"
	"net/http"

	"github.com/plsfundme/portal/internal/model"
)

func (c *Client) AdminStats(ctx context.Context, token string) (*model.Stats, error) {
	var out model.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PendingNGOs(ctx context.Context, token string) ([]model.PendingNGO, error) {
	var out []model.PendingNGO
	if err := c.do(ctx, http.MethodGet, "/admin/ngos/pending", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveNGO(ctx context.Context, token, id string) (string, error) {
	return c.action(ctx, token, "/admin/ngos/"+pathID(id)+"/approve")
}

func (c *Client) RejectNGO(ctx context.Context, token, id string) (string, error) {
	return c.action(ctx, token, "/admin/ngos/"+pathID(id)+"/reject")
}

func (c *Client) DonationRequests(ctx context.Context, token string) ([]model.Cause, error) {
	var out []model.Cause
	if err := c.do(ctx, http.MethodGet, "/admin/donation-requests", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveDonationRequest(ctx context.Context, token, id string) (string, error) {
	return c.action(ctx, token, "/admin/donation-requests/"+pathID(id)+"/approve")
}

func (c *Client) RejectDonationRequest(ctx context.Context, token, id string) (string, error) {
	return c.action(ctx, token, "/admin/donation-requests/"+pathID(id)+"/reject")
}

func (c *Client) CreateCategory(ctx context.Context, token string, cat model.Category) (*model.Category, error) {
	body := model.Category{Name: cat.Name, Description: cat.Description}

	var out model.Category
	if err := c.do(ctx, http.MethodPost, "/admin/categories", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// action posts to an approve/reject endpoint and returns its message.
func (c *Client) action(ctx context.Context, token, path string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, path, token, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
