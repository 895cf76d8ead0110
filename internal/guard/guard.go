// Package guard gates access-controlled pages on an authenticated session.
// It is a single binary gate: any authenticated role passes, and role
// specific pages confirm the role themselves.
package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/session"
)

const (
	LoginPath = "/login"
	NextParam = "next"
)

type Outcome int

const (
	Render Outcome = iota
	Redirect
)

type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide is pure: it reads only its arguments. Anonymous callers are sent to
// the login page carrying destination so login can return them there.
func Decide(sess *model.Session, destination string) Decision {
	if sess.Authenticated() {
		return Decision{Outcome: Render}
	}
	return Decision{Outcome: Redirect, Location: LoginURL(destination)}
}

func LoginURL(destination string) string {
	if destination == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{NextParam: {destination}}.Encode()
}

// RequireAuth applies Decide to the session attached by session.Store.Load.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())

		d := Decide(sess, r.URL.RequestURI())
		if d.Outcome == Redirect {
			http.Redirect(w, r, d.Location, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SafeNext returns next when it is a local absolute path, otherwise
// fallback. It keeps the post-login redirect on this site.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	if u.Path == LoginPath {
		return fallback
	}
	return next
}
