package api

import (
	"context"
	"net/http"

	"github.com/plsfundme/portal/internal/model"
	"github.com/shopspring/decimal"
)

func (c *Client) Donate(ctx context.Context, token, causeID string, amount decimal.Decimal) (*model.Donation, error) {
	body := map[string]string{"amount_donated": amount.StringFixed(2)}

	var out struct {
		Message  string         `json:"message"`
		Donation model.Donation `json:"donation"`
	}
	if err := c.do(ctx, http.MethodPost, "/donors/donate/"+pathID(causeID), token, body, &out); err != nil {
		return nil, err
	}
	return &out.Donation, nil
}

func (c *Client) MyDonations(ctx context.Context, token string) ([]model.Donation, error) {
	var out []model.Donation
	if err := c.do(ctx, http.MethodGet, "/donors/my-donations", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
