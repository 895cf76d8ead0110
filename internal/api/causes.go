package api

import (
	"context"
	"net/http"

	"github.com/plsfundme/portal/internal/model"
)

func (c *Client) ApprovedCauses(ctx context.Context) ([]model.Cause, error) {
	var out []model.Cause
	if err := c.do(ctx, http.MethodGet, "/causes/approved", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Cause(ctx context.Context, id string) (*model.Cause, error) {
	var out model.Cause
	if err := c.do(ctx, http.MethodGet, "/causes/"+pathID(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, "/causes/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
