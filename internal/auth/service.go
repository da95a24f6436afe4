package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"robotdemo/internal/models"
	"robotdemo/internal/session"
)

var ErrUserNotFound = errors.New("auth: user not found")

type Service struct {
	users  *Directory
	store  session.Store
	cookie session.CookieOptions
	lg     *zap.SugaredLogger
	now    func() time.Time
}

// NewService wires the user directory to a session store. secure sets the
// cookie Secure flag; ttl is both the cookie Max-Age and the session expiry.
func NewService(users *Directory, store session.Store, secure bool, ttl time.Duration, lg *zap.SugaredLogger) *Service {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Service{
		users:  users,
		store:  store,
		cookie: session.CookieOptions{Secure: secure, MaxAge: ttl},
		lg:     lg,
		now:    time.Now,
	}
}

func (s *Service) Users() *Directory { return s.users }

// CurrentUser resolves the request's session cookie. It returns nil when
// there is no cookie, the session is unknown or expired, or the user is gone.
func (s *Service) CurrentUser(r *http.Request) (*models.User, error) {
	token := session.TokenFromRequest(r)
	if token == "" {
		return nil, nil
	}
	sess, err := s.store.Get(r.Context(), token)
	if err != nil {
		return nil, fmt.Errorf("auth: load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	u, ok := s.users.ByID(sess.UserID)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Login starts a session for the user with this exact email and sets the
// cookie. A session the request already carries is revoked first. Unknown
// addresses return ErrUserNotFound and leave w and the old session untouched.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, email string) error {
	u, ok := s.users.ByEmail(email)
	if !ok {
		return ErrUserNotFound
	}
	ctx := r.Context()
	if old := session.TokenFromRequest(r); old != "" {
		if err := s.store.Delete(ctx, old); err != nil {
			s.lg.Warnw("login: revoke previous session failed", "error", err)
		}
	}
	sess, err := s.store.Create(ctx, u.ID, s.now().Add(s.cookie.MaxAge))
	if err != nil {
		return fmt.Errorf("auth: create session: %w", err)
	}
	session.SetCookie(w, sess.Token, s.cookie)
	s.lg.Infow("login", "user_id", u.ID)
	return nil
}

// Logout always clears the cookie. Failing to drop the stored session is
// logged, not returned.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	if token := session.TokenFromRequest(r); token != "" {
		if err := s.store.Delete(r.Context(), token); err != nil {
			s.lg.Warnw("logout: delete session failed", "error", err)
		}
	}
	session.ClearCookie(w, s.cookie)
}
