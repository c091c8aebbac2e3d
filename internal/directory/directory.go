// Package directory holds the static list of user identities. The list is
// fixed at startup and immutable for the life of the process.
package directory

// Role classifies a user for route guarding.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a directory identity. Password is the stored credential in the
// form the configured Verifier understands; the built-in demo dataset keeps
// plaintext values and must never be used with real credentials.
type User struct {
	ID         int    `json:"id" yaml:"id"`
	Username   string `json:"username" yaml:"username"`
	Email      string `json:"email" yaml:"email"`
	Password   string `json:"password" yaml:"password"`
	Name       string `json:"name" yaml:"name"`
	Role       Role   `json:"role" yaml:"role"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
}

// Directory is the immutable user list plus the credential seam.
type Directory struct {
	users    []User
	verifier Verifier
}

// New creates a directory over the given users. A nil verifier defaults to
// plaintext comparison (the demo dataset).
func New(users []User, verifier Verifier) *Directory {
	if verifier == nil {
		verifier = Plaintext{}
	}
	return &Directory{users: users, verifier: verifier}
}

// Authenticate finds the user whose username or email equals identifier,
// whose credential matches password, and whose role equals role. It returns
// nil when no user matches.
func (d *Directory) Authenticate(identifier, password string, role Role) *User {
	for i := range d.users {
		u := &d.users[i]
		if u.Username != identifier && u.Email != identifier {
			continue
		}
		if u.Role != role {
			continue
		}
		if d.verifier.Verify(u.Password, password) {
			out := *u
			return &out
		}
	}
	return nil
}

// ByID returns the user with the given id, or nil.
func (d *Directory) ByID(id int) *User {
	for i := range d.users {
		if d.users[i].ID == id {
			out := d.users[i]
			return &out
		}
	}
	return nil
}

// Users returns a copy of the full list.
func (d *Directory) Users() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}

// Staff returns the users with the staff role.
func (d *Directory) Staff() []User {
	var out []User
	for _, u := range d.users {
		if u.Role == RoleStaff {
			out = append(out, u)
		}
	}
	return out
}
