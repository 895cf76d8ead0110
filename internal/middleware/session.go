package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/plsfundme/portal/internal/config"
	"github.com/plsfundme/portal/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	flashKey      = "flash"
	flashErrorKey = "flash_error"
)

// SessionManager owns the browser session cookie. Each browser gets its own
// entry set, which makes it the per-browser equivalent of durable client
// storage; it satisfies storage.KV for the session store.
type SessionManager struct {
	impl  *scs.SessionManager
	redis *redis.Client
}

type SessionParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	sm := &SessionManager{}
	sm.impl = scs.New()
	sm.impl.Lifetime = p.Config.Session.Lifetime()
	sm.impl.Cookie.Name = p.Config.Session.CookieName
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.Secure = p.Config.Session.SecureCookie
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode
	sm.impl.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		p.Log.Error("session store failure", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	switch p.Config.Session.Store {
	case config.StoreFile:
		fs := storage.NewFileStore(p.Config.Session.FilePath, p.Log)
		sm.impl.Store = fs
		p.LC.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return fs.Flush()
			},
		})
	case config.StoreRedis:
		sm.redis = storage.NewRedis(p.Config.Redis, p.Log)
		sm.impl.Store = goredisstore.NewWithPrefix(sm.redis, p.Config.Redis.Prefix)
		p.LC.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return sm.redis.Close()
			},
		})
	}

	p.Log.Info("session store ready", zap.String("store", p.Config.Session.Store))
	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context, key string) (string, bool, error) {
	if !s.impl.Exists(ctx, key) {
		return "", false, nil
	}
	return s.impl.GetString(ctx, key), true, nil
}

func (s *SessionManager) Set(ctx context.Context, key, value string) error {
	s.impl.Put(ctx, key, value)
	return nil
}

func (s *SessionManager) Clear(ctx context.Context, key string) error {
	s.impl.Remove(ctx, key)
	return nil
}

// Renew issues a new session cookie token, keeping the data. Called on
// privilege changes (login) to rule out fixation.
func (s *SessionManager) Renew(ctx context.Context) error {
	return s.impl.RenewToken(ctx)
}

func (s *SessionManager) Flash(ctx context.Context, msg string) {
	s.impl.Put(ctx, flashKey, msg)
}

func (s *SessionManager) PopFlash(ctx context.Context) string {
	return s.impl.PopString(ctx, flashKey)
}

func (s *SessionManager) FlashError(ctx context.Context, msg string) {
	s.impl.Put(ctx, flashErrorKey, msg)
}

func (s *SessionManager) PopFlashError(ctx context.Context) string {
	return s.impl.PopString(ctx, flashErrorKey)
}

// Ping reports backing store health. Only redis can be unreachable.
func (s *SessionManager) Ping(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Ping(ctx).Err()
}

func (s *SessionManager) Backend() string {
	if s.redis != nil {
		return config.StoreRedis
	}
	if _, ok := s.impl.Store.(*storage.FileStore); ok {
		return config.StoreFile
	}
	return config.StoreMemory
}

var _ storage.KV = (*SessionManager)(nil)
