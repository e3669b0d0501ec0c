package ports

// PasswordHasher is a one-way, salted, adaptive password hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches digest. Malformed digests
	// never match.
	Verify(password, digest string) bool
}
