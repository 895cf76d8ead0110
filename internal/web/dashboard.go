package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/plsfundme/portal/internal/api"
	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/session"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ngoDashboardPath   = "/dashboard/ngo"
	adminDashboardPath = "/dashboard/admin"
)

type donationsPage struct {
	Donations []model.Donation
	Total     decimal.Decimal
}

type ngoPage struct {
	Causes     []model.Cause
	Categories []model.Category
}

type adminPage struct {
	Stats    *model.Stats
	Pending  []model.PendingNGO
	Requests []model.Cause
}

// token returns the credential of the guarded request. RequireAuth has
// already turned anonymous callers away.
func token(r *http.Request) string {
	sess, _ := session.FromContext(r.Context())
	if sess == nil {
		return ""
	}
	return sess.Token
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if path := dashboardPath(sess.Role); path != r.URL.Path {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}
	s.defaultDashboard(w, r)
}

func (s *Server) defaultDashboard(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, "dashboard.html", "Dashboard", nil, "")
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, "profile.html", "My Profile", nil, "")
}

func (s *Server) donorDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if !sess.Is(model.RoleDonor) {
		s.defaultDashboard(w, r)
		return
	}
	s.donationHistory(w, r, "dashboard_donor.html", "Donor Dashboard")
}

func (s *Server) donations(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if !sess.Is(model.RoleDonor) {
		s.defaultDashboard(w, r)
		return
	}
	s.donationHistory(w, r, "donations.html", "My Donations")
}

func (s *Server) donationHistory(w http.ResponseWriter, r *http.Request, tmpl, title string) {
	donations, err := s.api.MyDonations(r.Context(), token(r))
	if err != nil {
		s.apiFailure(w, r, err, "Your donations could not be loaded.")
		return
	}
	s.page(w, r, http.StatusOK, tmpl, title, donationsPage{
		Donations: donations,
		Total:     model.TotalDonated(donations),
	}, "")
}

func (s *Server) ngoDashboard(w http.ResponseWriter, r *http.Request) {
	causes, err := s.api.NGOCauses(r.Context(), token(r))
	if err != nil {
		s.apiFailure(w, r, err, "Your causes could not be loaded.")
		return
	}

	categories, err := s.api.Categories(r.Context())
	if err != nil {
		// the cause list is still useful without the create form options
		s.log.Warn("loading categories", zap.Error(err))
	}

	s.page(w, r, http.StatusOK, "dashboard_ngo.html", "NGO Dashboard", ngoPage{
		Causes:     causes,
		Categories: categories,
	}, "")
}

// causeInput reads the NGO cause form. Fields left blank stay unset so an
// update only changes what was submitted.
func causeInput(r *http.Request) (api.CauseInput, string) {
	in := api.CauseInput{
		CategoryID:  strings.TrimSpace(r.PostForm.Get("category_id")),
		Title:       strings.TrimSpace(r.PostForm.Get("title")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
	}
	if in.CategoryID != "" && !validID(in.CategoryID) {
		return in, "Unknown category."
	}

	if raw := strings.TrimSpace(r.PostForm.Get("amount_needed")); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil || !amount.IsPositive() {
			return in, "Amount needed must be a positive number."
		}
		in.AmountNeeded = &amount
	}
	return in, ""
}

func (s *Server) createCause(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	in, problem := causeInput(r)
	switch {
	case problem != "":
	case in.Title == "" || in.Description == "" || in.CategoryID == "" || in.AmountNeeded == nil:
		problem = "All fields are required."
	}
	if problem != "" {
		s.sessions.FlashError(r.Context(), problem)
		http.Redirect(w, r, ngoDashboardPath, http.StatusSeeOther)
		return
	}

	_, err := s.api.CreateCause(r.Context(), token(r), in)
	s.redirectBack(w, r, ngoDashboardPath, "Donation request submitted for approval.", err)
}

func (s *Server) updateCause(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		s.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	in, problem := causeInput(r)
	if problem != "" {
		s.sessions.FlashError(r.Context(), problem)
		http.Redirect(w, r, ngoDashboardPath, http.StatusSeeOther)
		return
	}

	_, err := s.api.UpdateCause(r.Context(), token(r), id, in)
	s.redirectBack(w, r, ngoDashboardPath, "Donation request updated.", err)
}

func (s *Server) deleteCause(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		s.notFound(w, r)
		return
	}

	msg, err := s.api.DeleteCause(r.Context(), token(r), id)
	if msg == "" {
		msg = "Donation request deleted."
	}
	s.redirectBack(w, r, ngoDashboardPath, msg, err)
}

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	tok := token(r)

	stats, err := s.api.AdminStats(r.Context(), tok)
	if err != nil {
		s.apiFailure(w, r, err, "Statistics could not be loaded.")
		return
	}
	pending, err := s.api.PendingNGOs(r.Context(), tok)
	if err != nil {
		s.apiFailure(w, r, err, "Pending NGOs could not be loaded.")
		return
	}
	requests, err := s.api.DonationRequests(r.Context(), tok)
	if err != nil {
		s.apiFailure(w, r, err, "Donation requests could not be loaded.")
		return
	}

	s.page(w, r, http.StatusOK, "dashboard_admin.html", "Admin Dashboard", adminPage{
		Stats:    stats,
		Pending:  pending,
		Requests: requests,
	}, "")
}

// adminAction wraps an approve or reject call on the item named by {id}.
func (s *Server) adminAction(msg string, fn func(ctx context.Context, token, id string) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !validID(id) {
			s.notFound(w, r)
			return
		}

		_, err := fn(r.Context(), token(r), id)
		s.redirectBack(w, r, adminDashboardPath, msg, err)
	}
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	cat := model.Category{
		Name:        strings.TrimSpace(r.PostForm.Get("name")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
	}
	if cat.Name == "" {
		s.sessions.FlashError(r.Context(), "Category name is required.")
		http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
		return
	}

	_, err := s.api.CreateCategory(r.Context(), token(r), cat)
	s.redirectBack(w, r, adminDashboardPath, "Category "+cat.Name+" created.", err)
}
