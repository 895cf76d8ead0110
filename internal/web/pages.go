package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plsfundme/portal/internal/api"
	"github.com/plsfundme/portal/internal/model"
)

const featuredCauses = 3

type homePage struct {
	Causes []model.Cause
}

type causesPage struct {
	Causes     []model.Cause
	Categories []string
	Active     string
	Query      string
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	causes, err := s.api.ApprovedCauses(r.Context())
	if err != nil {
		// the home page still renders without causes
		s.page(w, r, http.StatusOK, "home.html", "Home", homePage{}, api.Message(err, "Causes could not be loaded."))
		return
	}
	if len(causes) > featuredCauses {
		causes = causes[:featuredCauses]
	}
	s.page(w, r, http.StatusOK, "home.html", "Home", homePage{Causes: causes}, "")
}

func (s *Server) causes(w http.ResponseWriter, r *http.Request) {
	all, err := s.api.ApprovedCauses(r.Context())
	if err != nil {
		s.apiFailure(w, r, err, "Causes could not be loaded.")
		return
	}

	active := r.URL.Query().Get("category")
	if active == "" {
		active = "All"
	}
	q := r.URL.Query().Get("q")

	s.page(w, r, http.StatusOK, "causes.html", "Causes", causesPage{
		Causes:     model.FilterCauses(all, active, q),
		Categories: model.CategoryNames(all),
		Active:     active,
		Query:      q,
	}, "")
}

func (s *Server) cause(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		s.notFound(w, r)
		return
	}

	c, err := s.api.Cause(r.Context(), id)
	if err != nil {
		s.apiFailure(w, r, err, "The cause could not be loaded.")
		return
	}
	s.page(w, r, http.StatusOK, "cause.html", c.Title, c, "")
}
