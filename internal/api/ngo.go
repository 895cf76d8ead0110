package api

import (
	"context"
	"net/http"

	"github.com/plsfundme/portal/internal/model"
	"github.com/shopspring/decimal"
)

// CauseInput is the writable part of a cause. Update sends only the fields
// that are set.
type CauseInput struct {
	CategoryID   string           `json:"category_id,omitempty"`
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`
	AmountNeeded *decimal.Decimal `json:"amount_needed,omitempty"`
}

func (c *Client) NGOCauses(ctx context.Context, token string) ([]model.Cause, error) {
	var out []model.Cause
	if err := c.do(ctx, http.MethodGet, "/ngo/causes", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCause(ctx context.Context, token string, in CauseInput) (*model.Cause, error) {
	var out model.Cause
	if err := c.do(ctx, http.MethodPost, "/ngo/causes", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCause(ctx context.Context, token, id string, in CauseInput) (*model.Cause, error) {
	var out model.Cause
	if err := c.do(ctx, http.MethodPut, "/ngo/causes/"+pathID(id), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCause(ctx context.Context, token, id string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodDelete, "/ngo/causes/"+pathID(id), token, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
