package service

//go:generate mockgen -source=password_hasher.go -destination=mocks/password_hasher_mock.go -package=mocks

// PasswordHasher is the one-way secret hash used for account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare returns (false, nil) on a plain mismatch and an error when the
	// digest cannot be checked at all.
	Compare(plaintext, digest string) (bool, error)
}
