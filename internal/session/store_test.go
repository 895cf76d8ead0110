package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/plsfundme/portal/internal/model"
	"github.com/plsfundme/portal/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testNow    = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	testSecret = []byte("super-secret-jwt-key")
)

func sign(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return tok
}

func newTestStore(secret []byte) (*Store, *storage.Memory) {
	kv := storage.NewMemory()
	return New(Params{
		KV:      kv,
		Decoder: newDecoder(secret, func() time.Time { return testNow }),
		Log:     zap.NewNop(),
	}), kv
}

func persisted(t *testing.T, kv *storage.Memory) (string, bool) {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), TokenKey)
	require.NoError(t, err)
	return v, ok
}

func Test_InitializeEmptyStorage(t *testing.T) {
	s, _ := newTestStore(nil)
	assert.Nil(t, s.Initialize(context.Background()))
}

func Test_LoginDonorScenario(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	s, kv := newTestStore(nil)
	tok := sign(t, testSecret, jwt.MapClaims{
		"role":     "Donor",
		"username": "alice",
		"exp":      testNow.Add(time.Hour).Unix(),
	})

	sess := s.Login(ctx, tok)
	require.NotNil(sess)
	assert.Equal(model.RoleDonor, sess.Role)
	assert.Equal("alice", sess.DisplayName)
	assert.Equal(tok, sess.Token)

	v, ok := persisted(t, kv)
	assert.True(ok)
	assert.Equal(tok, v)
}

func Test_LoginExpiredScenario(t *testing.T) {
	assert := assert.New(t)

	s, kv := newTestStore(nil)
	tok := sign(t, testSecret, jwt.MapClaims{
		"role": "Donor",
		"exp":  testNow.Add(-10 * time.Second).Unix(),
	})

	assert.Nil(s.Login(context.Background(), tok))
	_, ok := persisted(t, kv)
	assert.False(ok)
}

func Test_ExpiryBoundaryIsExpired(t *testing.T) {
	s, _ := newTestStore(nil)
	tok := sign(t, testSecret, jwt.MapClaims{"role": "Donor", "exp": testNow.Unix()})

	assert.Nil(t, s.Login(context.Background(), tok))
}

func Test_MissingExpIsExpired(t *testing.T) {
	s, kv := newTestStore(nil)
	tok := sign(t, testSecret, jwt.MapClaims{"role": "Donor", "username": "alice"})

	assert.Nil(t, s.Login(context.Background(), tok))
	_, ok := persisted(t, kv)
	assert.False(t, ok)
}

func Test_MalformedTokens(t *testing.T) {
	inputs := []string{
		"not-a-token",
		"",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.!!!.sig",
		sign(t, testSecret, jwt.MapClaims{"exp": "tomorrow"}),
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			s, kv := newTestStore(nil)

			assert.NotPanics(t, func() {
				assert.Nil(t, s.Login(context.Background(), in))
			})
			_, ok := persisted(t, kv)
			assert.False(t, ok)
		})
	}
}

func Test_InitializeClearsMalformedPersistedToken(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil)
	require.NoError(t, kv.Set(ctx, TokenKey, "garbage"))

	assert.Nil(t, s.Initialize(ctx))
	_, ok := persisted(t, kv)
	assert.False(t, ok)
}

func Test_EveryKnownRoleProjects(t *testing.T) {
	for _, role := range []model.Role{model.RoleDonor, model.RoleNGO, model.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			s, _ := newTestStore(nil)
			tok := sign(t, testSecret, jwt.MapClaims{
				"role": string(role),
				"exp":  testNow.Add(time.Minute).Unix(),
			})

			sess := s.Login(context.Background(), tok)
			require.NotNil(t, sess)
			assert.Equal(t, role, sess.Role)
			assert.NotEmpty(t, sess.DisplayName)
		})
	}
}

func Test_DisplayNameFallbacks(t *testing.T) {
	exp := testNow.Add(time.Hour).Unix()
	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"username", jwt.MapClaims{"username": "alice", "sub": "user-1", "exp": exp}, "alice"},
		{"subject", jwt.MapClaims{"sub": "user-42", "exp": exp}, "user-42"},
		{"identity object", jwt.MapClaims{"sub": map[string]any{"id": "9f1c"}, "exp": exp}, "9f1c"},
		{"numeric identity", jwt.MapClaims{"sub": map[string]any{"id": 42}, "exp": exp}, "42"},
		{"empty username", jwt.MapClaims{"username": "", "sub": "user-7", "exp": exp}, "user-7"},
		{"nothing", jwt.MapClaims{"exp": exp}, "User"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestStore(nil)
			sess := s.Login(context.Background(), sign(t, testSecret, tc.claims))
			require.NotNil(t, sess)
			assert.Equal(t, tc.want, sess.DisplayName)
		})
	}
}

func Test_MissingRoleIsUnclassified(t *testing.T) {
	s, _ := newTestStore(nil)
	sess := s.Login(context.Background(), sign(t, testSecret, jwt.MapClaims{
		"username": "bob",
		"exp":      testNow.Add(time.Hour).Unix(),
	}))

	require.NotNil(t, sess)
	assert.Equal(t, model.Role(""), sess.Role)
	assert.False(t, sess.Role.Known())
}

func Test_LogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil)
	s.Login(ctx, sign(t, testSecret, jwt.MapClaims{"exp": testNow.Add(time.Hour).Unix()}))

	assert.NotPanics(t, func() {
		s.Logout(ctx)
		s.Logout(ctx)
	})
	assert.Nil(t, s.Initialize(ctx))
	_, ok := persisted(t, kv)
	assert.False(t, ok)
}

func Test_LoginThenReloadMatches(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	clock := func() time.Time { return testNow }

	first := New(Params{KV: kv, Decoder: newDecoder(nil, clock), Log: zap.NewNop()})
	tok := sign(t, testSecret, jwt.MapClaims{
		"role":     "NGO",
		"username": "Helping Hands",
		"exp":      testNow.Add(time.Hour).Unix(),
	})
	fromLogin := first.Login(ctx, tok)
	require.NotNil(t, fromLogin)

	// a fresh store sharing only the persisted storage
	reloaded := New(Params{KV: kv, Decoder: newDecoder(nil, clock), Log: zap.NewNop()})
	assert.Equal(t, fromLogin, reloaded.Initialize(ctx))
}

func Test_LoginReplacesPriorToken(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(nil)
	exp := testNow.Add(time.Hour).Unix()

	s.Login(ctx, sign(t, testSecret, jwt.MapClaims{"username": "alice", "exp": exp}))
	second := sign(t, testSecret, jwt.MapClaims{"username": "bob", "exp": exp})
	sess := s.Login(ctx, second)

	require.NotNil(t, sess)
	assert.Equal(t, "bob", sess.DisplayName)
	v, _ := persisted(t, kv)
	assert.Equal(t, second, v)
}

func Test_VerifyingDecoderRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(testSecret)
	exp := testNow.Add(time.Hour).Unix()

	assert.Nil(t, s.Login(ctx, sign(t, []byte("someone-else"), jwt.MapClaims{"username": "mallory", "exp": exp})))
	_, ok := persisted(t, kv)
	assert.False(t, ok)

	sess := s.Login(ctx, sign(t, testSecret, jwt.MapClaims{"username": "alice", "exp": exp}))
	require.NotNil(t, sess)
	assert.Equal(t, "alice", sess.DisplayName)
}

func Test_LoadAttachesSession(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s, kv := newTestStore(nil)
	require.NoError(kv.Set(context.Background(), TokenKey, sign(t, testSecret, jwt.MapClaims{
		"role":     "Admin",
		"username": "root",
		"exp":      testNow.Add(time.Hour).Unix(),
	})))

	var got *model.Session
	h := s.Load(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(got)
	assert.Equal(model.RoleAdmin, got.Role)
	assert.Equal("root", got.DisplayName)
}

func Test_FromContextAnonymous(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	_, ok = FromContext(WithSession(context.Background(), nil))
	assert.False(t, ok)
}
