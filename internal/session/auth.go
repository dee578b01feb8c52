// ABOUTME: In-memory auth session store and one-shot session bootstrap
// ABOUTME: Keeps process state and durable slots consistent via SetAuth

package session

import (
	"context"
	"sync"
	"time"
)

// Role is a named role attached to the authenticated user.
type Role struct {
	Name string `json:"name"`
}

// User is the portal profile as returned by the me endpoint.
type User struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	Roles     []Role `json:"roles"`
}

// Token is the access/refresh pair plus the access expiry timestamp.
type Token struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Timeout string `json:"timeout"`
}

// Auth is the full in-memory session: token pair plus user profile.
type Auth struct {
	Token Token `json:"token"`
	User  User  `json:"user"`
}

// HasRole reports whether the user's role list contains the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Backend is the slice of the API client the session layer depends on.
type Backend interface {
	// Me fetches the current user's profile.
	Me(ctx context.Context) (User, error)
	// Refresh exchanges the stored refresh token for a new access token.
	Refresh(ctx context.Context) error
}

// Notifier surfaces a transient user-visible notice. It must never panic;
// session failures are notifications, not crashes.
type Notifier func(message string)

// AuthStore holds the in-memory session for the lifetime of the process.
// Durable storage is the source of truth across runs; this store is the
// source of truth within a run. SetAuth is the only mutation entry point.
type AuthStore struct {
	store  *Store
	notify Notifier

	mu      sync.Mutex
	auth    Auth
	started bool
}

// NewAuthStore creates an auth store backed by the durable slot store.
// notify may be nil.
func NewAuthStore(store *Store, notify Notifier) *AuthStore {
	if notify == nil {
		notify = func(string) {}
	}
	return &AuthStore{store: store, notify: notify}
}

// SetAuth replaces the in-memory session and mirrors identity into the
// durable slots: display name, expiry, and the creator/contributor role
// flags.
func (a *AuthStore) SetAuth(auth Auth) {
	a.mu.Lock()
	a.auth = auth
	a.mu.Unlock()

	if auth.User.Name == "" {
		return
	}
	a.store.Set(SlotName, auth.User.Name)
	if auth.Token.Timeout != "" {
		a.store.Set(SlotTimeout, auth.Token.Timeout)
	}
	if auth.User.HasRole("admin") {
		a.store.Set(SlotCreator, "1")
	}
	if auth.User.HasRole("contributor") {
		a.store.Set(SlotContributor, "1")
	}
}

// Current returns a copy of the in-memory session.
func (a *AuthStore) Current() Auth {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth
}

// Authenticated reports whether a user profile is loaded.
func (a *AuthStore) Authenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth.User.Name != ""
}

// Bootstrap reconciles client-side auth state with the backend. It runs at
// most once per store; later calls return immediately so re-invocations
// cannot cause duplicate fetches or refresh storms.
//
// With no session in memory it fetches the current user and populates the
// session from the response plus the durable timeout slot. A failure is
// surfaced as a notification and the state stays unauthenticated. With a
// session already in memory it proactively refreshes when the stored expiry
// is in the past.
func (a *AuthStore) Bootstrap(ctx context.Context, backend Backend) {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	current := a.auth
	a.mu.Unlock()

	if current.User.Name == "" {
		user, err := backend.Me(ctx)
		if err != nil {
			a.notify("Sesi habis")
			return
		}
		current.User = user
		current.Token.Timeout = a.store.Get(SlotTimeout)
		a.SetAuth(current)
		return
	}

	timeout := current.Token.Timeout
	if timeout == "" {
		timeout = a.store.Get(SlotTimeout)
	}
	if expired(timeout, time.Now()) {
		if err := backend.Refresh(ctx); err != nil {
			a.notify("Sesi habis")
		}
	}
}

// expired reports whether the stored expiry timestamp is in the past.
// Unparseable timestamps count as not expired; the 401 path still covers
// a stale token.
func expired(timeout string, now time.Time) bool {
	if timeout == "" {
		return false
	}
	ts, err := time.Parse(time.RFC3339, timeout)
	if err != nil {
		return false
	}
	return ts.Before(now)
}
