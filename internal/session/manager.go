// Package session owns the current authenticated identity: credential
// checks against the directory, persistence of the session across restarts,
// and the token/route-guard plumbing.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"attendease/internal/directory"
	"attendease/internal/kv"
)

// CurrentUserKey is the durable-storage key holding the serialized session
// user; it is absent when logged out.
const CurrentUserKey = "currentUser"

// ErrInvalidCredentials is returned when no directory user matches the
// supplied identifier, password, and role.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Manager validates credentials and holds the current session.
type Manager struct {
	dir *directory.Directory
	kv  kv.Store

	issuer     string
	signingKey string
	accessTTL  time.Duration

	mu      sync.RWMutex
	current *directory.User
}

// NewManager creates an unauthenticated session manager.
func NewManager(dir *directory.Directory, store kv.Store, issuer, signingKey string, accessTTL time.Duration) *Manager {
	return &Manager{
		dir:        dir,
		kv:         store,
		issuer:     issuer,
		signingKey: signingKey,
		accessTTL:  accessTTL,
	}
}

// Login matches identifier (username or email) + password + role against the
// directory. On success it sets and persists the session and returns the
// user with a signed access token. On mismatch session state is unchanged.
func (m *Manager) Login(ctx context.Context, identifier, password string, role directory.Role) (*directory.User, string, error) {
	user := m.dir.Authenticate(identifier, password, role)
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := IssueToken(user, m.issuer, m.signingKey, m.accessTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()

	// Fire-and-forget by contract: the session is live even if the write
	// failed, it just won't survive a restart.
	if err := m.persist(ctx, user); err != nil {
		log.Printf("session persist failed: %v", err)
	}
	return user, token, nil
}

// Logout clears the current session and removes the persisted state. It
// always succeeds from the caller's point of view.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	_ = m.kv.Delete(ctx, CurrentUserKey)
}

// Restore loads a persisted session if one exists, otherwise leaves the
// manager unauthenticated.
func (m *Manager) Restore(ctx context.Context) error {
	raw, ok, err := m.kv.Get(ctx, CurrentUserKey)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil
	}
	var user directory.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	return nil
}

// Current returns the session user and whether one is authenticated.
func (m *Manager) Current() (*directory.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, false
	}
	out := *m.current
	return &out, true
}

// IsAdmin reports whether the current session belongs to an administrator.
func (m *Manager) IsAdmin() bool {
	u, ok := m.Current()
	return ok && u.Role == directory.RoleAdmin
}

func (m *Manager) persist(ctx context.Context, user *directory.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, CurrentUserKey, string(raw))
}
