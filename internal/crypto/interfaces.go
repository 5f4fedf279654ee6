package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into slow salted hashes and
// checks candidates against them. Implementations must be safe for
// concurrent use.
type PasswordHasher interface {
	// Hash returns the encoded hash of password. The output embeds its own
	// salt and cost, so hashing the same password twice yields different
	// strings.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed hash is a
	// mismatch, never a panic.
	Verify(password, hash string) bool
}

// CodeGenerator issues one-time numeric codes.
type CodeGenerator interface {
	// Generate returns a 6-digit decimal string uniformly distributed in
	// [100000, 999999], drawn from a cryptographically secure source.
	Generate() (string, error)
}
