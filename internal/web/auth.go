package web

import (
	"net/http"
	"strings"

	"github.com/plsfundme/portal/internal/api"
	"github.com/plsfundme/portal/internal/guard"
	"github.com/plsfundme/portal/internal/model"
	"go.uber.org/zap"
)

type loginPage struct {
	Next  string
	Email string
}

type signupPage struct {
	Username string
	Email    string
	Role     string
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, "login.html", "Log In", loginPage{
		Next: r.URL.Query().Get(guard.NextParam),
	}, "")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := loginPage{
		Next:  r.PostForm.Get(guard.NextParam),
		Email: strings.TrimSpace(r.PostForm.Get("email")),
	}
	password := r.PostForm.Get("password")
	if form.Email == "" || password == "" {
		s.page(w, r, http.StatusUnprocessableEntity, "login.html", "Log In", form, "Email and password are required.")
		return
	}

	res, err := s.api.Login(r.Context(), form.Email, password)
	if err != nil {
		status := http.StatusUnauthorized
		if !api.IsUnauthorized(err) {
			status = http.StatusBadGateway
		}
		s.page(w, r, status, "login.html", "Log In", form, api.Message(err, "Login failed. Please check your credentials."))
		return
	}

	// new identity, new session id
	if err := s.sessions.Renew(r.Context()); err != nil {
		s.log.Error("renewing session", zap.Error(err))
	}

	sess := s.store.Login(r.Context(), res.AccessToken)
	if sess == nil {
		s.page(w, r, http.StatusBadGateway, "login.html", "Log In", form, "The server returned an unusable credential. Please try again.")
		return
	}

	s.log.Info("user logged in", zap.String("user", sess.DisplayName), zap.Stringer("role", sess.Role))
	s.sessions.Flash(r.Context(), "Welcome back, "+sess.DisplayName+"!")
	http.Redirect(w, r, guard.SafeNext(form.Next, dashboardPath(sess.Role)), http.StatusSeeOther)
}

func (s *Server) signupForm(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, "signup.html", "Sign Up", signupPage{Role: string(model.RoleDonor)}, "")
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := signupPage{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Role:     r.PostForm.Get("role"),
	}
	password := r.PostForm.Get("password")

	role := model.Role(form.Role)
	var problem string
	switch {
	case form.Username == "" || form.Email == "" || password == "":
		problem = "All fields are required."
	case len(password) < 8:
		problem = "Password must be at least 8 characters."
	case role != model.RoleDonor && role != model.RoleNGO:
		problem = "Choose either Donor or NGO."
	}
	if problem != "" {
		s.page(w, r, http.StatusUnprocessableEntity, "signup.html", "Sign Up", form, problem)
		return
	}

	msg, err := s.api.Register(r.Context(), api.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		s.page(w, r, http.StatusUnprocessableEntity, "signup.html", "Sign Up", form, api.Message(err, "Registration failed."))
		return
	}

	if msg == "" {
		msg = "Registration successful. Please log in."
	}
	if role == model.RoleNGO {
		msg += " NGO accounts can log in once an administrator approves them."
	}
	s.sessions.Flash(r.Context(), msg)
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.store.Logout(r.Context())
	if err := s.sessions.Renew(r.Context()); err != nil {
		s.log.Error("renewing session", zap.Error(err))
	}
	s.sessions.Flash(r.Context(), "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
