package account

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	// ValidatePassword reports false for malformed hashes, it never fails.
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
