package auth

import (
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a fixed cost factor. Hashing is
// intentionally slow, so concurrent computations are capped by a slot
// channel sized to the number of scheduler threads; waiting requests park
// on the channel instead of piling more bcrypt work onto the CPUs.
type PasswordHasher struct {
	cost  int
	slots chan struct{}
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs
// outside the bcrypt range fall back to bcrypt.DefaultCost rather than
// silently weakening hashes.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return &PasswordHasher{cost: cost, slots: make(chan struct{}, n)}
}

// Hash derives a salted bcrypt hash of the password. Each call generates a
// fresh salt, so two hashes of the same password differ.
func (h *PasswordHasher) Hash(password string) (string, error) {
	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether the password matches the stored bcrypt hash,
// using the salt and cost embedded in it. Any mismatch or undecodable
// hash yields false.
func (h *PasswordHasher) Compare(password, encoded string) bool {
	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
