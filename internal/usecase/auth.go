package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/port"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/logger"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/security"
)

// ErrInvalidEmail indicates a credential field that cannot be an email address.
var ErrInvalidEmail = errors.New("auth: invalid email address")

// AuthService drives login, registration and logout against the remote auth
// endpoints and installs the resulting token through the session manager.
type AuthService struct {
	api       port.AuthAPI
	sessions  *SessionManager
	passwords *security.PasswordValidator
	log       *zap.Logger
}

// NewAuthService constructs the auth service. A nil password validator
// disables client-side strength checks.
func NewAuthService(api port.AuthAPI, sessions *SessionManager, passwords *security.PasswordValidator, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		api:       api,
		sessions:  sessions,
		passwords: passwords,
		log:       log,
	}
}

// Login exchanges credentials for a token and installs it as the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if !looksLikeEmail(email) {
		return domain.Unauthenticated(), ErrInvalidEmail
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Unauthenticated(), fmt.Errorf("login: %w", err)
	}

	session := s.sessions.Issue(token)
	s.log.Info("logged in", zap.String("email", logger.MaskEmail(email)))
	return session, nil
}

// Register validates the password against the service's policy before
// spending a round trip, creates the account and installs the session.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if !looksLikeEmail(email) {
		return domain.Unauthenticated(), ErrInvalidEmail
	}
	if s.passwords != nil {
		if err := s.passwords.Validate(password); err != nil {
			return domain.Unauthenticated(), fmt.Errorf("register: %w", err)
		}
	}

	token, err := s.api.Register(ctx, email, password)
	if err != nil {
		return domain.Unauthenticated(), fmt.Errorf("register: %w", err)
	}

	session := s.sessions.Issue(token)
	s.log.Info("registered", zap.String("email", logger.MaskEmail(email)))
	return session, nil
}

// Logout tells the server to drop the token, best effort, then invalidates
// the local session regardless of the server's answer.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug("server-side logout failed", zap.Error(err))
	}
	s.sessions.Invalidate()
}

// looksLikeEmail is a shape check, not RFC validation; the server remains the
// authority.
func looksLikeEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
