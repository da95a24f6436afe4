package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"robotdemo/internal/models"
	"robotdemo/internal/session"
)

func newTestService(t *testing.T, store session.Store) *Service {
	t.Helper()
	return NewService(NewDirectory(DemoUsers()), store, false, 0, zaptest.NewLogger(t).Sugar())
}

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestDirectory(t *testing.T) {
	d := NewDirectory(append(DemoUsers(),
		models.User{ID: "user-3", Name: "Dup", Email: "admin@example.com", Role: models.RoleUser},
	))
	assert.Len(t, d.List(), 2)

	u, ok := d.ByEmail("admin@example.com")
	require.True(t, ok)
	assert.Equal(t, "user-1", u.ID)

	_, ok = d.ByEmail("ADMIN@example.com")
	assert.False(t, ok)
	assert.True(t, d.Exists("user-2"))
	assert.False(t, d.Exists("user-3"))
}

func TestService_Login(t *testing.T) {
	t.Run("Should log an admin in and resolve the session", func(t *testing.T) {
		svc := newTestService(t, session.NewMemoryStore())
		rec := httptest.NewRecorder()
		require.NoError(t, svc.Login(rec, requestWith(), "admin@example.com"))

		c := sessionCookie(t, rec)
		require.NotNil(t, c)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, 604800, c.MaxAge)
		assert.False(t, c.Secure)

		u, err := svc.CurrentUser(requestWith(c))
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, models.RoleAdmin, u.Role)
	})
	t.Run("Should fail for unknown email without a cookie", func(t *testing.T) {
		svc := newTestService(t, session.NewMemoryStore())
		rec := httptest.NewRecorder()
		err := svc.Login(rec, requestWith(), "unknown@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, sessionCookie(t, rec))
	})
	t.Run("Should mark cookies secure in production", func(t *testing.T) {
		svc := NewService(NewDirectory(DemoUsers()), session.NewMemoryStore(), true, time.Hour, zaptest.NewLogger(t).Sugar())
		rec := httptest.NewRecorder()
		require.NoError(t, svc.Login(rec, requestWith(), "user@example.com"))
		c := sessionCookie(t, rec)
		require.NotNil(t, c)
		assert.True(t, c.Secure)
		assert.Equal(t, 3600, c.MaxAge)
	})
	t.Run("Should revoke the session the request already carries", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := newTestService(t, store)
		first := httptest.NewRecorder()
		require.NoError(t, svc.Login(first, requestWith(), "user@example.com"))
		old := sessionCookie(t, first)
		require.NotNil(t, old)

		second := httptest.NewRecorder()
		require.NoError(t, svc.Login(second, requestWith(old), "admin@example.com"))
		fresh := sessionCookie(t, second)
		require.NotNil(t, fresh)
		assert.NotEqual(t, old.Value, fresh.Value)
		assert.Equal(t, 1, store.Len())

		u, err := svc.CurrentUser(requestWith(old))
		require.NoError(t, err)
		assert.Nil(t, u)
		u, err = svc.CurrentUser(requestWith(fresh))
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "user-1", u.ID)
	})
	t.Run("Should keep the current session when the email is unknown", func(t *testing.T) {
		svc := newTestService(t, session.NewMemoryStore())
		first := httptest.NewRecorder()
		require.NoError(t, svc.Login(first, requestWith(), "user@example.com"))
		old := sessionCookie(t, first)

		err := svc.Login(httptest.NewRecorder(), requestWith(old), "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
		u, err := svc.CurrentUser(requestWith(old))
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "user-2", u.ID)
	})
	t.Run("Should use the user id as token in legacy mode", func(t *testing.T) {
		dir := NewDirectory(DemoUsers())
		svc := NewService(dir, session.NewUserIDStore(dir.Exists), false, 0, zaptest.NewLogger(t).Sugar())
		rec := httptest.NewRecorder()
		require.NoError(t, svc.Login(rec, requestWith(), "user@example.com"))
		assert.Equal(t, "user-2", sessionCookie(t, rec).Value)
	})
}

func TestService_CurrentUser(t *testing.T) {
	dir := NewDirectory(DemoUsers())
	svc := NewService(dir, session.NewUserIDStore(dir.Exists), false, 0, zaptest.NewLogger(t).Sugar())

	t.Run("Should return nil without a cookie", func(t *testing.T) {
		u, err := svc.CurrentUser(requestWith())
		require.NoError(t, err)
		assert.Nil(t, u)
	})
	t.Run("Should return the user for a valid session", func(t *testing.T) {
		u, err := svc.CurrentUser(requestWith(&http.Cookie{Name: session.CookieName, Value: "user-1"}))
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "user-1", u.ID)
		assert.Equal(t, models.RoleAdmin, u.Role)
	})
	t.Run("Should return nil for an invalid session", func(t *testing.T) {
		u, err := svc.CurrentUser(requestWith(&http.Cookie{Name: session.CookieName, Value: "invalid-session"}))
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestService_Logout(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestService(t, store)

	rec := httptest.NewRecorder()
	require.NoError(t, svc.Login(rec, requestWith(), "admin@example.com"))
	c := sessionCookie(t, rec)

	for i := 0; i < 2; i++ {
		out := httptest.NewRecorder()
		svc.Logout(out, requestWith(c))
		cleared := sessionCookie(t, out)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	}
	assert.Zero(t, store.Len())

	u, err := svc.CurrentUser(requestWith(c))
	require.NoError(t, err)
	assert.Nil(t, u)

	// no session at all
	out := httptest.NewRecorder()
	svc.Logout(out, requestWith())
	assert.NotNil(t, sessionCookie(t, out))
}

func TestRoleChecks(t *testing.T) {
	admin := WithUser(context.Background(), DemoUsers()[0])
	user := WithUser(context.Background(), DemoUsers()[1])
	anon := context.Background()

	assert.True(t, IsAuthenticated(admin))
	assert.False(t, IsAuthenticated(anon))

	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(user))
	assert.False(t, IsAdmin(anon))

	assert.True(t, HasRole(admin, models.RoleAdmin))
	assert.True(t, HasRole(admin, models.RoleUser))
	assert.True(t, HasRole(user, models.RoleUser))
	assert.False(t, HasRole(user, models.RoleAdmin))
	assert.False(t, HasRole(anon, models.RoleUser))
	assert.False(t, HasRole(anon, models.RoleAdmin))
}

func TestMiddleware(t *testing.T) {
	dir := NewDirectory(DemoUsers())
	svc := NewService(dir, session.NewUserIDStore(dir.Exists), false, 0, zaptest.NewLogger(t).Sugar())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	adminOnly := LoadSession(svc)(RequireRole(models.RoleAdmin)(ok))
	signedIn := LoadSession(svc)(RequireAuth(ok))

	cases := []struct {
		name    string
		h       http.Handler
		cookie  string
		expects int
	}{
		{"admin route as admin", adminOnly, "user-1", http.StatusOK},
		{"admin route as user", adminOnly, "user-2", http.StatusForbidden},
		{"admin route anonymous", adminOnly, "", http.StatusUnauthorized},
		{"signed-in route as user", signedIn, "user-2", http.StatusOK},
		{"signed-in route with bogus token", signedIn, "nobody", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := requestWith()
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: session.CookieName, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			tc.h.ServeHTTP(rec, r)
			assert.Equal(t, tc.expects, rec.Code)
		})
	}
}
