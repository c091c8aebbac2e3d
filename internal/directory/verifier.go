package directory

import "golang.org/x/crypto/bcrypt"

// Verifier compares a stored credential against a supplied password. It is
// the seam that lets the demo's plaintext dataset and a real hashed
// credential store use the same login path.
type Verifier interface {
	Verify(stored, supplied string) bool
}

// Plaintext compares credentials byte-for-byte. Demo datasets only.
type Plaintext struct{}

func (Plaintext) Verify(stored, supplied string) bool {
	return stored == supplied
}

// Bcrypt expects stored credentials to be bcrypt hashes.
type Bcrypt struct{}

func (Bcrypt) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}
