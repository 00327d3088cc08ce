package tbo

import "io"

// Encryptor protects archived snapshots. Encrypting needs only the public
// key; decrypting needs the passphrase that guards the private key.
type Encryptor interface {
	// Setup generates a key pair once, during `tbo config init --encrypt`.
	// The private key is stored encrypted with passphrase.
	Setup(passphrase string) error

	// Encrypt writes the ciphertext of r to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock opens the private key. A wrong passphrase is an error.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether both key files exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory while an archived
// snapshot is restored. It is never written to disk.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
