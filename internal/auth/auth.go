// Package auth gates the dashboard routes on a token and role pair.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/repository"
)

// Credential carriers. Headers win over cookies.
const (
	HeaderToken = "X-Auth-Token"
	HeaderRole  = "X-Auth-Role"
	CookieToken = "token"
	CookieRole  = "role"
)

const localSession = "session"

type Options struct {
	Mode              string
	AdminUser         string
	AdminPasswordHash string
	Store             repository.SessionStore
	Log               zerolog.Logger
	Now               func() time.Time
}

type Authenticator struct {
	mode      string
	adminUser string
	adminHash []byte
	store     repository.SessionStore
	log       zerolog.Logger
	now       func() time.Time
}

func New(o Options) *Authenticator {
	if o.Mode == "" {
		o.Mode = config.AuthPresence
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Authenticator{
		mode:      o.Mode,
		adminUser: o.AdminUser,
		adminHash: []byte(o.AdminPasswordHash),
		store:     o.Store,
		log:       o.Log.With().Str("component", "auth").Logger(),
		now:       o.Now,
	}
}

func (a *Authenticator) Mode() string { return a.mode }

// Login checks the admin credentials and issues a fresh session token.
// An empty configured hash disables login.
func (a *Authenticator) Login(ctx context.Context, user, password string) (domain.Session, error) {
	if len(a.adminHash) == 0 || user != a.adminUser {
		return domain.Session{}, fmt.Errorf("login %q: %w", user, domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(a.adminHash, []byte(password)); err != nil {
		return domain.Session{}, fmt.Errorf("login %q: %w", user, domain.ErrUnauthorized)
	}
	s := domain.Session{
		Token:     uuid.NewString(),
		Username:  user,
		Role:      domain.RoleSuperAdmin,
		CreatedAt: a.now(),
	}
	if a.store != nil {
		if err := a.store.Create(ctx, s); err != nil {
			return domain.Session{}, fmt.Errorf("create session: %w", err)
		}
	}
	a.log.Info().Str("user", user).Msg("login")
	return s, nil
}

func (a *Authenticator) Logout(ctx context.Context, token string) error {
	if a.store == nil || token == "" {
		return nil
	}
	if err := a.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Check resolves the caller's session. In presence mode any non-empty token
// and role pass; in session mode the token must be live in the store and the
// stored role is authoritative.
func (a *Authenticator) Check(ctx context.Context, token, role string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, fmt.Errorf("missing token: %w", domain.ErrUnauthorized)
	}
	s := domain.Session{Token: token, Role: role}
	if a.mode == config.AuthSession {
		if a.store == nil {
			return domain.Session{}, fmt.Errorf("session store: %w", domain.ErrUnavailable)
		}
		stored, err := a.store.Get(ctx, token)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, fmt.Errorf("session: %w", domain.ErrUnauthorized)
		}
		if err != nil {
			return domain.Session{}, err
		}
		s = stored
	}
	if s.Role == "" {
		return domain.Session{}, fmt.Errorf("missing role: %w", domain.ErrUnauthorized)
	}
	if s.Role != domain.RoleSuperAdmin {
		return domain.Session{}, fmt.Errorf("role %q: %w", s.Role, domain.ErrForbidden)
	}
	return s, nil
}

// Credentials reads the token and role from headers, falling back to cookies.
func Credentials(c *fiber.Ctx) (token, role string) {
	token = strings.TrimSpace(c.Get(HeaderToken))
	if token == "" {
		token = strings.TrimSpace(c.Cookies(CookieToken))
	}
	role = strings.TrimSpace(c.Get(HeaderRole))
	if role == "" {
		role = strings.TrimSpace(c.Cookies(CookieRole))
	}
	return token, role
}

// Middleware rejects requests without a valid SuperAdmin session.
func (a *Authenticator) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, role := Credentials(c)
		s, err := a.Check(c.UserContext(), token, role)
		if err != nil {
			return err
		}
		c.Locals(localSession, s)
		return c.Next()
	}
}

// SessionFrom returns the session stored by Middleware.
func SessionFrom(c *fiber.Ctx) (domain.Session, bool) {
	s, ok := c.Locals(localSession).(domain.Session)
	return s, ok
}
