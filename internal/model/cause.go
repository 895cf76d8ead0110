package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type NGOProfile struct {
	ID               string `json:"id,omitempty"`
	OrganizationName string `json:"organization_name"`
	ContactPerson    string `json:"contact_person,omitempty"`
	WebsiteURL       string `json:"website_url,omitempty"`
	Description      string `json:"description,omitempty"`
}

const (
	CauseStatusPending   = "Pending"
	CauseStatusApproved  = "Approved"
	CauseStatusRejected  = "Rejected"
	CauseStatusCompleted = "Completed"
)

// Cause is a donation request raised by an NGO.
type Cause struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"category_id,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	AmountNeeded   decimal.Decimal `json:"amount_needed"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	ImageURL       string          `json:"image_url,omitempty"`
	Status         string          `json:"status,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	NGO            *NGOProfile     `json:"ngo,omitempty"`
	Category       *Category       `json:"category,omitempty"`
}

// Remaining is the amount still needed, never negative.
func (c Cause) Remaining() decimal.Decimal {
	rem := c.AmountNeeded.Sub(c.AmountReceived)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// Progress is the funded share in whole percent, clamped to [0, 100].
func (c Cause) Progress() int {
	if !c.AmountNeeded.IsPositive() {
		return 0
	}
	pct := c.AmountReceived.Div(c.AmountNeeded).Mul(decimal.NewFromInt(100)).Floor()
	switch {
	case pct.IsNegative():
		return 0
	case pct.GreaterThan(decimal.NewFromInt(100)):
		return 100
	}
	return int(pct.IntPart())
}

func (c Cause) CategoryName() string {
	if c.Category == nil {
		return ""
	}
	return c.Category.Name
}

// FilterCauses keeps causes in the named category (empty or "All" matches
// every category) whose title or description contains q, ignoring case.
func FilterCauses(causes []Cause, category, q string) []Cause {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]Cause, 0, len(causes))
	for _, c := range causes {
		if category != "" && category != "All" && c.CategoryName() != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CategoryNames lists the distinct category names in first-seen order.
func CategoryNames(causes []Cause) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, c := range causes {
		name := c.CategoryName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
