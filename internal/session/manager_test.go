package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendease/internal/directory"
	"attendease/internal/kv"
)

func newTestManager(store kv.Store) *Manager {
	dir := directory.New(directory.SeedUsers(), nil)
	return NewManager(dir, store, "attendease-test", "test-signing-key", time.Hour)
}

func TestLoginSuccess(t *testing.T) {
	store := kv.NewMemory()
	m := newTestManager(store)
	ctx := context.Background()

	user, token, err := m.Login(ctx, "admin", "admin2085", directory.RoleAdmin)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != directory.RoleAdmin {
		t.Errorf("role = %s, want admin", user.Role)
	}
	if token == "" {
		t.Error("no token issued")
	}

	current, ok := m.Current()
	if !ok {
		t.Fatal("not authenticated after login")
	}
	if current.Username != "admin" {
		t.Errorf("current = %s", current.Username)
	}
	if !m.IsAdmin() {
		t.Error("IsAdmin = false")
	}

	if _, ok, _ := store.Get(ctx, CurrentUserKey); !ok {
		t.Error("session not persisted")
	}

	claims, err := ParseToken(token, "test-signing-key", "attendease-test")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != directory.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginByEmail(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	if _, _, err := m.Login(context.Background(), "neha@attendease.com", "neha2085", directory.RoleStaff); err != nil {
		t.Fatalf("login by email: %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	cases := []struct {
		name       string
		identifier string
		password   string
		role       directory.Role
	}{
		{"wrong password", "admin", "nope", directory.RoleAdmin},
		{"wrong role", "admin", "admin2085", directory.RoleStaff},
		{"unknown user", "ghost", "admin2085", directory.RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := kv.NewMemory()
			m := newTestManager(store)

			_, _, err := m.Login(context.Background(), tc.identifier, tc.password, tc.role)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
			if _, ok := m.Current(); ok {
				t.Error("session set after failed login")
			}
			if _, ok, _ := store.Get(context.Background(), CurrentUserKey); ok {
				t.Error("session persisted after failed login")
			}
		})
	}
}

func TestLogoutClearsState(t *testing.T) {
	store := kv.NewMemory()
	m := newTestManager(store)
	ctx := context.Background()

	if _, _, err := m.Login(ctx, "admin", "admin2085", directory.RoleAdmin); err != nil {
		t.Fatalf("login: %v", err)
	}
	m.Logout(ctx)

	if _, ok := m.Current(); ok {
		t.Error("still authenticated after logout")
	}
	if _, ok, _ := store.Get(ctx, CurrentUserKey); ok {
		t.Error("persisted session not removed")
	}
}

func TestRestore(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	first := newTestManager(store)
	if _, _, err := first.Login(ctx, "ritik", "ritik2085", directory.RoleStaff); err != nil {
		t.Fatalf("login: %v", err)
	}

	second := newTestManager(store)
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	user, ok := second.Current()
	if !ok {
		t.Fatal("not authenticated after restore")
	}
	if user.Username != "ritik" {
		t.Errorf("restored user = %s", user.Username)
	}
}

func TestRestoreWithoutState(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Error("authenticated with no persisted state")
	}
}
