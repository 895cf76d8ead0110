package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/plsfundme/portal/internal/api"
	"github.com/plsfundme/portal/internal/config"
	"github.com/plsfundme/portal/internal/guard"
	"github.com/plsfundme/portal/internal/middleware"
	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/session"
	"github.com/plsfundme/portal/internal/template"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:embed static
var static embed.FS

type Server struct {
	log      *zap.Logger
	sessions *middleware.SessionManager
	store    *session.Store
	api      *api.Client
	render   *template.Renderer
	server   *http.Server
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *middleware.SessionManager
	Store    *session.Store
	API      *api.Client
	Renderer *template.Renderer
}

func New(p Params) (*Server, error) {
	s := &Server{
		log:      p.Log,
		sessions: p.Sessions,
		store:    p.Store,
		api:      p.API,
		render:   p.Renderer,
	}

	s.server = &http.Server{
		Addr:    p.Config.Server.Addr(),
		Handler: s.routes(),
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	assets, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(middleware.RequestLogger(s.log))
	root.Use(chimw.Recoverer)

	root.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(assets))))
	root.Get("/healthz", s.health)

	root.Group(func(r chi.Router) {
		r.Use(s.sessions.Wrap)
		r.Use(s.store.Load)

		// No Auth
		r.Group(func(r chi.Router) {
			r.Get("/", s.home)
			r.Get("/about", s.static("about.html", "About Us"))
			r.Get("/contact", s.static("contact.html", "Contact"))
			r.Get("/causes", s.causes)
			r.Get("/causes/{id}", s.cause)

			r.Get("/login", s.loginForm)
			r.Post("/login", s.login)
			r.Get("/signup", s.signupForm)
			r.Post("/signup", s.signup)
			r.Post("/logout", s.logout)
		})

		// Auth
		r.Group(func(r chi.Router) {
			r.Use(guard.RequireAuth)

			r.Get("/profile", s.profile)
			r.Get("/dashboard", s.dashboard)
			r.Get("/donations", s.donations)
			r.Get("/donate/{id}", s.donateForm)
			r.Post("/donate/{id}", s.donate)

			r.Get("/dashboard/donor", s.donorDashboard)

			r.Route("/dashboard/ngo", func(r chi.Router) {
				r.Use(s.roleOnly(model.RoleNGO))
				r.Get("/", s.ngoDashboard)
				r.Post("/causes", s.createCause)
				r.Post("/causes/{id}", s.updateCause)
				r.Post("/causes/{id}/delete", s.deleteCause)
			})

			r.Route("/dashboard/admin", func(r chi.Router) {
				r.Use(s.roleOnly(model.RoleAdmin))
				r.Get("/", s.adminDashboard)
				r.Post("/ngos/{id}/approve", s.adminAction("NGO approved.", s.api.ApproveNGO))
				r.Post("/ngos/{id}/reject", s.adminAction("NGO rejected.", s.api.RejectNGO))
				r.Post("/requests/{id}/approve", s.adminAction("Donation request approved.", s.api.ApproveDonationRequest))
				r.Post("/requests/{id}/reject", s.adminAction("Donation request rejected.", s.api.RejectDonationRequest))
				r.Post("/categories", s.createCategory)
			})
		})

		r.NotFound(s.notFound)
	})

	return root
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	s.log.Info("portal listening", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error running server", zap.Error(err))
		}
	}()
	return nil
}
