package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/plsfundme/portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, cfg *config.Config) (*SessionManager, *fxtest.Lifecycle) {
	t.Helper()
	lc := fxtest.NewLifecycle(t)
	sm, err := NewSessionManager(SessionParams{LC: lc, Config: cfg, Log: zap.NewNop()})
	require.NoError(t, err)
	return sm, lc
}

// roundTrip runs h behind the session middleware, forwarding the cookie
// from a previous response if there was one.
func roundTrip(sm *SessionManager, h http.HandlerFunc, prev *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prev != nil {
		for _, c := range prev.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	rr := httptest.NewRecorder()
	sm.Wrap(h).ServeHTTP(rr, req)
	return rr
}

func Test_SessionManagerKV(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	sm, _ := newTestManager(t, config.Default())
	assert.Equal(config.StoreMemory, sm.Backend())

	first := roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		_, ok, err := sm.Get(r.Context(), "token")
		require.NoError(err)
		assert.False(ok)
		require.NoError(sm.Set(r.Context(), "token", "abc"))
	}, nil)
	require.NotEmpty(first.Result().Cookies())

	second := roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		v, ok, err := sm.Get(r.Context(), "token")
		require.NoError(err)
		assert.True(ok)
		assert.Equal("abc", v)
		require.NoError(sm.Clear(r.Context(), "token"))
	}, first)

	roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		_, ok, _ := sm.Get(r.Context(), "token")
		assert.False(ok)
	}, second)
}

func Test_SessionManagerFlash(t *testing.T) {
	assert := assert.New(t)

	sm, _ := newTestManager(t, config.Default())

	first := roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		sm.Flash(r.Context(), "Donation received")
	}, nil)

	second := roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		assert.Equal("Donation received", sm.PopFlash(r.Context()))
	}, first)

	roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		assert.Empty(sm.PopFlash(r.Context()))
	}, second)
}

func Test_SessionManagerRedis(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Session.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()

	sm, lc := newTestManager(t, cfg)
	assert.Equal(config.StoreRedis, sm.Backend())

	rr := roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		require.NoError(sm.Ping(r.Context()))
		require.NoError(sm.Set(r.Context(), "token", "abc"))
	}, nil)
	require.NotEmpty(rr.Result().Cookies())

	var prefixed int
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, cfg.Redis.Prefix) {
			prefixed++
		}
	}
	assert.Equal(1, prefixed)

	lc.RequireStart().RequireStop()
}

func Test_SessionManagerFileFlushesOnStop(t *testing.T) {
	require := require.New(t)

	cfg := config.Default()
	cfg.Session.Store = config.StoreFile
	cfg.Session.FilePath = filepath.Join(t.TempDir(), "sessions.json")

	sm, lc := newTestManager(t, cfg)
	require.Equal(config.StoreFile, sm.Backend())
	lc.RequireStart()

	roundTrip(sm, func(_ http.ResponseWriter, r *http.Request) {
		require.NoError(sm.Set(r.Context(), "token", "abc"))
	}, nil)

	lc.RequireStop()
	require.FileExists(cfg.Session.FilePath)
}
