package main

import (
	"flag"

	"github.com/plsfundme/portal/internal/api"
	"github.com/plsfundme/portal/internal/config"
	"github.com/plsfundme/portal/internal/logging"
	"github.com/plsfundme/portal/internal/middleware"
	"github.com/plsfundme/portal/internal/session"
	"github.com/plsfundme/portal/internal/storage"
	"github.com/plsfundme/portal/internal/template"
	"github.com/plsfundme/portal/internal/web"
	"go.uber.org/fx"
)

func main() {
	var path = flag.String("config", string(config.DefaultPath), "path to the yaml config file")
	flag.Parse()

	newPath := func() config.Path {
		return config.Path(*path)
	}

	// the browser session is where the credential token lives
	newKV := func(sm *middleware.SessionManager) storage.KV {
		return sm
	}

	app := fx.New(
		fx.Provide(
			newPath,
			config.New,
			logging.New,
			middleware.NewSessionManager,
			newKV,
			api.New,
			template.New,
		),
		session.Module,
		web.Module,
	)

	app.Run()
}
