package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes passwords with bcrypt. Every digest carries its own salt.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// bcryptMaxInput is the number of password bytes bcrypt reads; longer input is
// cut here instead of being rejected by bcrypt.GenerateFromPassword.
const bcryptMaxInput = 72

func bcryptInput(plain string) []byte {
	b := []byte(plain)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}

// Hash hashes the plain text password using bcrypt. Only the first 72 bytes count.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. Malformed digests and
// mismatches both yield false.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(plain)) == nil
}
