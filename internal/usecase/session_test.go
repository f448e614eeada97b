package usecase

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
)

// memoryStore is an in-memory port.TokenStore for tests.
type memoryStore struct {
	token  string
	set    bool
	clears int
}

func (s *memoryStore) Get() (string, bool) { return s.token, s.set }

func (s *memoryStore) Set(token string) error {
	s.token = token
	s.set = true
	return nil
}

func (s *memoryStore) Clear() error {
	s.token = ""
	s.set = false
	s.clears++
	return nil
}

// makeToken builds an unsigned JWT carrying the given claims. The session
// manager never verifies signatures, so an arbitrary signature segment is fine.
func makeToken(t *testing.T, sub, email string, exp int64) string {
	t.Helper()

	encode := func(v any) string {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal token segment: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(raw)
	}

	header := encode(map[string]string{"alg": "HS256", "typ": "JWT"})
	claims := encode(map[string]any{"sub": sub, "email": email, "exp": exp})
	return strings.Join([]string{header, claims, "c2ln"}, ".")
}

func TestRestoreValidToken(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	store := &memoryStore{}
	_ = store.Set(makeToken(t, "user-1", "ada@example.com", now.Unix()+3600))

	m := NewSessionManager(store, nil).WithClock(func() time.Time { return now })
	session := m.Restore()

	if session.Status != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated session, got %s", session.Status)
	}
	if session.Claims.SubjectID != "user-1" {
		t.Fatalf("unexpected subject: %s", session.Claims.SubjectID)
	}
	if session.Claims.Email != "ada@example.com" {
		t.Fatalf("unexpected email: %s", session.Claims.Email)
	}
}

func TestRestoreExpiredTokenClearsStore(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	store := &memoryStore{}
	_ = store.Set(makeToken(t, "user-1", "ada@example.com", now.Unix()-1))

	m := NewSessionManager(store, nil).WithClock(func() time.Time { return now })
	session := m.Restore()

	if session.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated session, got %s", session.Status)
	}
	if store.clears != 1 {
		t.Fatalf("expected the stale token to be cleared once, got %d", store.clears)
	}
}

func TestRestoreExpiryEqualToNowIsExpired(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	store := &memoryStore{}
	_ = store.Set(makeToken(t, "user-1", "", now.Unix()))

	m := NewSessionManager(store, nil).WithClock(func() time.Time { return now })
	if session := m.Restore(); session.Status != domain.StatusUnauthenticated {
		t.Fatalf("token expiring exactly now must not restore, got %s", session.Status)
	}
}

func TestRestoreMalformedTokenDegradesSilently(t *testing.T) {
	store := &memoryStore{}
	_ = store.Set("not-a-jwt")

	m := NewSessionManager(store, nil)
	session := m.Restore()

	if session.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated session, got %s", session.Status)
	}
	if store.clears != 1 {
		t.Fatalf("expected the malformed token to be cleared, got %d clears", store.clears)
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	m := NewSessionManager(&memoryStore{}, nil)
	if session := m.Restore(); session.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated session, got %s", session.Status)
	}
}

func TestIssuePersistsToken(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	store := &memoryStore{}
	m := NewSessionManager(store, nil).WithClock(func() time.Time { return now })

	token := makeToken(t, "user-9", "grace@example.com", now.Unix()+600)
	session := m.Issue(token)

	if session.Status != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated session, got %s", session.Status)
	}
	if got, ok := store.Get(); !ok || got != token {
		t.Fatalf("token not persisted: %q / %v", got, ok)
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	store := &memoryStore{}
	m := NewSessionManager(store, nil).WithClock(func() time.Time { return now })
	m.Issue(makeToken(t, "user-9", "", now.Unix()+600))

	m.Invalidate()
	m.Invalidate()

	if session := m.Current(); session.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated session, got %s", session.Status)
	}
	if _, ok := store.Get(); ok {
		t.Fatalf("expected store to be cleared")
	}
}

func TestTokenGatesOnValidity(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	m := NewSessionManager(&memoryStore{}, nil).WithClock(func() time.Time { return now })
	issued := makeToken(t, "user-9", "", now.Unix()+60)
	m.Issue(issued)

	if token, ok := m.Token(now); !ok || token != issued {
		t.Fatalf("expected token while valid, got %q / %v", token, ok)
	}
	if _, ok := m.Token(now.Add(61 * time.Second)); ok {
		t.Fatalf("expected no token after expiry")
	}
}
