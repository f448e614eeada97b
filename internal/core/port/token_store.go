package port

// TokenStore persists the session token across process restarts. All
// operations are synchronous and local.
type TokenStore interface {
	// Get returns the persisted token, or "" and false when none is stored.
	Get() (string, bool)
	Set(token string) error
	Clear() error
}
