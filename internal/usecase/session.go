package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/port"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/logger"
)

// SessionManager owns the client session. It is the only writer of session
// state; the transport reads through the port.SessionSource view.
type SessionManager struct {
	store port.TokenStore
	log   *zap.Logger
	now   func() time.Time

	mu      sync.Mutex
	current domain.Session
}

// NewSessionManager constructs a session manager over the supplied store.
func NewSessionManager(store port.TokenStore, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionManager{
		store:   store,
		log:     log,
		now:     time.Now,
		current: domain.Unauthenticated(),
	}
}

// WithClock overrides the time source. Intended for tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// Restore loads the persisted token, if any, and installs it when its embedded
// claims are parseable and unexpired. A malformed or expired token is
// discarded rather than surfaced as an error: the session degrades to
// unauthenticated and the caller proceeds to a fresh login.
func (m *SessionManager) Restore() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.store.Get()
	if !ok || token == "" {
		m.current = domain.Unauthenticated()
		return m.current
	}

	claims, err := parseTokenClaims(token)
	if err != nil {
		m.log.Warn("discarding unparseable persisted token", zap.Error(err))
		_ = m.store.Clear()
		m.current = domain.Unauthenticated()
		return m.current
	}

	if claims.ExpiresAt <= m.now().Unix() {
		m.log.Info("persisted token expired, discarding",
			zap.String("subject", claims.SubjectID),
			zap.Int64("expired_at", claims.ExpiresAt),
		)
		_ = m.store.Clear()
		m.current = domain.Unauthenticated()
		return m.current
	}

	m.current = domain.Session{Token: token, Claims: claims, Status: domain.StatusAuthenticated}
	m.log.Info("session restored",
		zap.String("subject", claims.SubjectID),
		zap.String("email", logger.MaskEmail(claims.Email)),
	)
	return m.current
}

// Issue installs a freshly obtained token (login or registration result)
// unconditionally as authenticated and persists it for future restores.
func (m *SessionManager) Issue(token string) domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	claims, err := parseTokenClaims(token)
	if err != nil {
		// A fresh token from the server should always parse; keep the
		// session usable for this process lifetime regardless.
		m.log.Warn("issued token has unparseable claims", zap.Error(err))
	}

	if err := m.store.Set(token); err != nil {
		m.log.Warn("failed to persist session token", zap.Error(err))
	}

	m.current = domain.Session{Token: token, Claims: claims, Status: domain.StatusAuthenticated}
	return m.current
}

// Invalidate clears the persisted token and transitions to unauthenticated.
// Safe to call repeatedly; triggered by explicit logout or by the transport
// observing a 401.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Status != domain.StatusUnauthenticated {
		m.log.Info("session invalidated", zap.String("subject", m.current.Claims.SubjectID))
	}
	if err := m.store.Clear(); err != nil {
		m.log.Warn("failed to clear persisted token", zap.Error(err))
	}
	m.current = domain.Unauthenticated()
}

// Current returns a copy of the session as last observed.
func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Token implements port.SessionSource: it returns the bearer token only while
// the session is valid at the supplied moment.
func (m *SessionManager) Token(at time.Time) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current.IsValid(at) {
		return "", false
	}
	return m.current.Token, true
}

// parseTokenClaims decodes the claims embedded in the token without verifying
// the signature; verification is the server's responsibility, the client only
// needs the expiry and subject for lifecycle decisions.
func parseTokenClaims(token string) (domain.Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return domain.Claims{}, fmt.Errorf("parse token: %w", err)
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.Claims{}, fmt.Errorf("token has no usable exp claim")
	}

	claims := domain.Claims{ExpiresAt: exp.Unix()}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.SubjectID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}
