// Package cryptox derives the credentials exchanged during registration and
// login. The password never leaves the client: only the salt and a verifier
// (a hash of the argon2-derived key) are sent to the server or cached locally
// for offline sign-in.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32
)

// DeriveMasterKey stretches password with salt using argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// MakeVerifier returns the SHA-256 of the master key.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// VerifierFor is MakeVerifier(DeriveMasterKey(password, salt)).
func VerifierFor(password, salt []byte) []byte {
	return MakeVerifier(DeriveMasterKey(password, salt))
}

// Equal compares two verifiers in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
