package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// TokenKey names the single persisted entry holding the raw credential
// token. Its absence means logged out.
const TokenKey = "token"

// Store derives the current Session from the persisted credential token.
// Failures never reach callers: anything that cannot be projected into a
// valid Session leaves the caller anonymous with the entry cleared.
type Store struct {
	kv      storage.KV
	decoder *Decoder
	log     *zap.Logger
}

type Params struct {
	fx.In

	KV      storage.KV
	Decoder *Decoder
	Log     *zap.Logger
}

func New(p Params) *Store {
	return &Store{
		kv:      p.KV,
		decoder: p.Decoder,
		log:     p.Log,
	}
}

// Initialize loads the persisted token, if any, and projects it. It returns
// nil when anonymous.
func (s *Store) Initialize(ctx context.Context) *model.Session {
	raw, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		s.log.Error("reading credential token", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return s.project(ctx, raw)
}

// Login persists token, replacing any previous one, and projects it.
func (s *Store) Login(ctx context.Context, token string) *model.Session {
	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		s.log.Error("persisting credential token", zap.Error(err))
		return nil
	}
	return s.project(ctx, token)
}

// Logout removes the persisted token. Safe to call when already anonymous.
func (s *Store) Logout(ctx context.Context) {
	s.clear(ctx)
}

func (s *Store) project(ctx context.Context, raw string) *model.Session {
	claims, err := s.decoder.Decode(raw)
	if err != nil {
		level := zap.DebugLevel
		if errors.Is(err, ErrMalformed) {
			level = zap.WarnLevel
		}
		s.log.Log(level, "discarding credential token", zap.Error(err))
		s.clear(ctx)
		return nil
	}

	return &model.Session{
		Token:       raw,
		DisplayName: claims.DisplayName(),
		Role:        claims.Role,
	}
}

func (s *Store) clear(ctx context.Context) {
	if err := s.kv.Clear(ctx, TokenKey); err != nil {
		s.log.Error("clearing credential token", zap.Error(err))
	}
}

// Load runs Initialize once per request and attaches the result to the
// request context, where handlers and the route guard read it.
func (s *Store) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.Initialize(r.Context())
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
