package directory

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	d := New(SeedUsers(), nil)

	cases := []struct {
		name       string
		identifier string
		password   string
		role       Role
		want       string // matched username, "" for no match
	}{
		{"admin by username", "admin", "admin2085", RoleAdmin, "admin"},
		{"staff by email", "gaurav@attendease.com", "gaurav2085", RoleStaff, "gaurav"},
		{"wrong password", "admin", "wrong", RoleAdmin, ""},
		{"role mismatch", "admin", "admin2085", RoleStaff, ""},
		{"staff asking admin", "ritik", "ritik2085", RoleAdmin, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := d.Authenticate(tc.identifier, tc.password, tc.role)
			if tc.want == "" {
				if u != nil {
					t.Fatalf("matched %s, want no match", u.Username)
				}
				return
			}
			if u == nil {
				t.Fatal("no match")
			}
			if u.Username != tc.want {
				t.Errorf("matched %s, want %s", u.Username, tc.want)
			}
		})
	}
}

func TestByIDAndStaff(t *testing.T) {
	d := New(SeedUsers(), nil)

	if u := d.ByID(9); u == nil || u.Username != "neha" {
		t.Errorf("ByID(9) = %+v", u)
	}
	if u := d.ByID(12); u != nil {
		t.Errorf("ByID(12) should be absent from the roster, got %+v", u)
	}
	for _, u := range d.Staff() {
		if u.Role != RoleStaff {
			t.Errorf("Staff() returned %s with role %s", u.Username, u.Role)
		}
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	d := New([]User{
		{ID: 1, Username: "ops", Email: "ops@example.com", Password: string(hash), Role: RoleAdmin},
	}, Bcrypt{})

	if d.Authenticate("ops", "s3cret", RoleAdmin) == nil {
		t.Error("bcrypt match failed")
	}
	if d.Authenticate("ops", "wrong", RoleAdmin) != nil {
		t.Error("bcrypt accepted a wrong password")
	}
}
