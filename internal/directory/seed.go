package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedUsers is the built-in demo dataset: one administrator and the staff
// roster across departments.
func SeedUsers() []User {
	return []User{
		{ID: 0, Username: "admin", Email: "admin@attendease.com", Password: "admin2085", Name: "Administrator", Role: RoleAdmin},
		{ID: 1, Username: "dhananjay", Email: "dhananjay@attendease.com", Password: "dhananjay2085", Name: "Dhananjay", Role: RoleStaff, Department: "Developer"},
		{ID: 2, Username: "ritik", Email: "ritik@attendease.com", Password: "ritik2085", Name: "Ritik", Role: RoleStaff, Department: "Developer"},
		{ID: 3, Username: "kushagara", Email: "kushagara@attendease.com", Password: "kushagara2085", Name: "Kushagara", Role: RoleStaff, Department: "Developer"},
		{ID: 4, Username: "gaurav", Email: "gaurav@attendease.com", Password: "gaurav2085", Name: "Gaurav", Role: RoleStaff, Department: "Developer"},
		{ID: 5, Username: "gulista", Email: "gulista@attendease.com", Password: "gulista2085", Name: "Gulista", Role: RoleStaff, Department: "Counsellor"},
		{ID: 6, Username: "shabnoor", Email: "shabnoor@attendease.com", Password: "shabnoor2085", Name: "Shabnoor", Role: RoleStaff, Department: "Counsellor"},
		{ID: 7, Username: "shivani", Email: "shivani@attendease.com", Password: "shivani2085", Name: "Shivani", Role: RoleStaff, Department: "Counsellor"},
		{ID: 8, Username: "kanika", Email: "kanika@attendease.com", Password: "kanika2085", Name: "Kanika", Role: RoleStaff, Department: "Counsellor"},
		{ID: 9, Username: "neha", Email: "neha@attendease.com", Password: "neha2085", Name: "Neha", Role: RoleStaff, Department: "HR"},
		{ID: 10, Username: "kashish", Email: "kashish@attendease.com", Password: "kashish2085", Name: "Kashish", Role: RoleStaff, Department: "Counsellor"},
		{ID: 11, Username: "devraj", Email: "devraj@attendease.com", Password: "devraj2085", Name: "Devraj", Role: RoleStaff, Department: "Developer"},
		{ID: 13, Username: "akash", Email: "akash@attendease.com", Password: "akash2085", Name: "Akash Patel", Role: RoleStaff, Department: "Developer"},
		{ID: 14, Username: "manogya", Email: "manogya@attendease.com", Password: "manogya2085", Name: "Manogya", Role: RoleStaff, Department: "Developer"},
		{ID: 15, Username: "apoorv", Email: "apoorv@attendease.com", Password: "apoorv2085", Name: "Apoorv Singh", Role: RoleStaff, Department: "Developer"},
	}
}

type usersFile struct {
	Users []User `yaml:"users"`
}

// LoadUsersFile reads a YAML roster to replace the built-in dataset.
func LoadUsersFile(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(uf.Users) == 0 {
		return nil, fmt.Errorf("no users in %s", path)
	}
	seen := make(map[int]bool, len(uf.Users))
	for _, u := range uf.Users {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("user %d missing username or password", u.ID)
		}
		if seen[u.ID] {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		seen[u.ID] = true
	}
	return uf.Users, nil
}
