package model

import "github.com/shopspring/decimal"

type CauseSummary struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	NGO   *NGOProfile `json:"ngo,omitempty"`
}

type Donation struct {
	ID            string          `json:"id"`
	AmountDonated decimal.Decimal `json:"amount_donated"`
	CreatedAt     string          `json:"created_at"`
	Cause         *CauseSummary   `json:"donation_request,omitempty"`
}

func TotalDonated(donations []Donation) decimal.Decimal {
	total := decimal.Zero
	for _, d := range donations {
		total = total.Add(d.AmountDonated)
	}
	return total
}

type PendingNGO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	DateJoined string `json:"date_joined"`
}

type Stats struct {
	TotalNGOs        int             `json:"totalNgos"`
	PendingApprovals int             `json:"pendingApprovals"`
	TotalDonations   decimal.Decimal `json:"totalDonations"`
}
