package web

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/plsfundme/portal/internal/api"
	"github.com/plsfundme/portal/internal/guard"
	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/session"
	"github.com/plsfundme/portal/internal/template"
	"go.uber.org/zap"
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
)

// page renders tmpl with the request's session and any pending flash
// messages. errMsg, when set, replaces a flashed error.
func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, tmpl, title string, pg any, errMsg string) {
	sess, _ := session.FromContext(r.Context())

	td := &template.Data{
		PageTitle: title,
		Session:   sess,
		Flash:     s.sessions.PopFlash(r.Context()),
		Error:     s.sessions.PopFlashError(r.Context()),
		Page:      pg,
	}
	if errMsg != "" {
		td.Error = errMsg
	}

	if err := s.render.Render(w, status, tmpl, td); err != nil {
		s.log.Error("rendering page", zap.String("template", tmpl), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) static(tmpl, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.page(w, r, http.StatusOK, tmpl, title, nil, "")
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusNotFound, "error.html", "Page not found", nil, "")
}

// apiFailure handles an error from an authenticated API call. A rejected
// token ends the session here, since nothing re-checks expiry in between.
func (s *Server) apiFailure(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if api.IsUnauthorized(err) {
		s.store.Logout(r.Context())
		s.sessions.FlashError(r.Context(), msgSessionExpired)

		next := ""
		if r.Method == http.MethodGet {
			next = r.URL.RequestURI()
		}
		http.Redirect(w, r, guard.LoginURL(next), http.StatusSeeOther)
		return
	}

	s.log.Warn("api call failed", zap.String("path", r.URL.Path), zap.Error(err))
	status := http.StatusBadGateway
	if api.IsNotFound(err) {
		status = http.StatusNotFound
	}
	s.page(w, r, status, "error.html", "Something went wrong", nil, api.Message(err, fallback))
}

// redirectBack flashes the outcome of a dashboard form and returns to to.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request, to, msg string, err error) {
	switch {
	case err == nil:
		s.sessions.Flash(r.Context(), msg)
	case api.IsUnauthorized(err):
		s.apiFailure(w, r, err, "")
		return
	default:
		s.sessions.FlashError(r.Context(), api.Message(err, "The request could not be completed."))
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// validID reports whether id looks like an identifier the API issues.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// roleOnly confirms the role for a role specific section. A mismatched GET
// gets the default dashboard; anything else is refused.
func (s *Server) roleOnly(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := session.FromContext(r.Context())
			if sess.Is(role) {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodGet {
				s.defaultDashboard(w, r)
				return
			}
			s.page(w, r, http.StatusForbidden, "error.html", "Not allowed", nil,
				"This action is only available to "+role.String()+" accounts.")
		})
	}
}

func dashboardPath(role model.Role) string {
	switch role {
	case model.RoleDonor:
		return "/dashboard/donor"
	case model.RoleNGO:
		return "/dashboard/ngo"
	case model.RoleAdmin:
		return "/dashboard/admin"
	}
	return "/dashboard"
}
