package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/session"
	"github.com/shopspring/decimal"
)

type donatePage struct {
	Cause  *model.Cause
	Amount string
}

// loadDonation fetches the cause a donation form is for. It writes the
// response itself and returns nil when the form cannot be shown.
func (s *Server) loadDonation(w http.ResponseWriter, r *http.Request) *model.Cause {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		s.notFound(w, r)
		return nil
	}

	c, err := s.api.Cause(r.Context(), id)
	if err != nil {
		s.apiFailure(w, r, err, "The cause could not be loaded.")
		return nil
	}

	sess, _ := session.FromContext(r.Context())
	if !sess.Is(model.RoleDonor) {
		s.page(w, r, http.StatusForbidden, "error.html", "Donors only", nil, "Only donor accounts can make donations.")
		return nil
	}
	return c
}

func (s *Server) donateForm(w http.ResponseWriter, r *http.Request) {
	c := s.loadDonation(w, r)
	if c == nil {
		return
	}
	s.page(w, r, http.StatusOK, "donate.html", "Donate", donatePage{Cause: c}, "")
}

func (s *Server) donate(w http.ResponseWriter, r *http.Request) {
	c := s.loadDonation(w, r)
	if c == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := donatePage{Cause: c, Amount: strings.TrimSpace(r.PostForm.Get("amount"))}
	amount, problem := donationAmount(form.Amount, c.Remaining())
	if problem != "" {
		s.page(w, r, http.StatusUnprocessableEntity, "donate.html", "Donate", form, problem)
		return
	}

	if _, err := s.api.Donate(r.Context(), token(r), c.ID, amount); err != nil {
		s.apiFailure(w, r, err, "Your donation could not be completed.")
		return
	}

	s.sessions.Flash(r.Context(), "Thank you for donating "+amount.StringFixed(2)+" to "+c.Title+"!")
	http.Redirect(w, r, "/dashboard/donor", http.StatusSeeOther)
}

// donationAmount parses a donation amount, which must be positive and no
// more than what the cause still needs.
func donationAmount(raw string, remaining decimal.Decimal) (decimal.Decimal, string) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "Enter the amount as a number, for example 25.00."
	}
	if !amount.IsPositive() {
		return decimal.Zero, "Amount must be greater than zero."
	}
	if amount.GreaterThan(remaining) {
		return decimal.Zero, "Amount cannot exceed the " + remaining.StringFixed(2) + " still needed."
	}
	return amount, ""
}
