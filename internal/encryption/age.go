package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	"tbo-go/internal/config"
	"tbo-go/internal/tbo"
)

// ErrNotConfigured is returned when the key files have not been generated yet.
var ErrNotConfigured = errors.New("encryption keys not set up (run `tbo config init --encrypt`)")

// AgeEncryptor encrypts archived snapshots to an X25519 recipient. Output is
// ASCII-armored so archived files stay printable. The private key lives on
// disk wrapped in an scrypt passphrase envelope.
type AgeEncryptor struct {
	publicKeyPath  string
	privateKeyPath string
}

var _ tbo.Encryptor = (*AgeEncryptor)(nil)

func NewAgeEncryptor(cfg config.EncryptionConfig) *AgeEncryptor {
	return &AgeEncryptor{
		publicKeyPath:  cfg.PublicKeyPath,
		privateKeyPath: cfg.PrivateKeyPath,
	}
}

// Setup creates a fresh key pair. Existing key files are overwritten.
func (e *AgeEncryptor) Setup(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	for _, p := range []string{e.publicKeyPath, e.privateKeyPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return fmt.Errorf("creating key directory: %w", err)
		}
	}

	if err := os.WriteFile(e.publicKeyPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	wrap, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	var sealed bytes.Buffer
	if err := seal(&sealed, strings.NewReader(identity.String()+"\n"), wrap); err != nil {
		return fmt.Errorf("sealing private key: %w", err)
	}
	if err := os.WriteFile(e.privateKeyPath, sealed.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	return nil
}

// Encrypt needs only the public key, so snapshots can be archived without a
// passphrase prompt.
func (e *AgeEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	recipient, err := e.recipient()
	if err != nil {
		return err
	}
	return seal(w, r, recipient)
}

func (e *AgeEncryptor) Unlock(passphrase string) (tbo.DecryptionContext, error) {
	sealed, err := os.ReadFile(e.privateKeyPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	unwrap, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	var keyText bytes.Buffer
	if err := open(&keyText, bytes.NewReader(sealed), unwrap); err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}

	identity, err := age.ParseX25519Identity(strings.TrimSpace(keyText.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return &AgeDecryptionContext{identity: identity}, nil
}

func (e *AgeEncryptor) IsConfigured() bool {
	return exists(e.publicKeyPath) && exists(e.privateKeyPath)
}

func (e *AgeEncryptor) recipient() (age.Recipient, error) {
	data, err := os.ReadFile(e.publicKeyPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}

	recipient, err := age.ParseX25519Recipient(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return recipient, nil
}

// AgeDecryptionContext holds an unlocked identity for the length of a restore.
type AgeDecryptionContext struct {
	identity age.Identity
}

var _ tbo.DecryptionContext = (*AgeDecryptionContext)(nil)

func (c *AgeDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	return open(w, r, c.identity)
}

// seal writes the armored age ciphertext of r to w.
func seal(w io.Writer, r io.Reader, recipient age.Recipient) error {
	aw := armor.NewWriter(w)
	ew, err := age.Encrypt(aw, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(ew, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("finalizing armor: %w", err)
	}
	return nil
}

// open is the inverse of seal.
func open(w io.Writer, r io.Reader, identity age.Identity) error {
	dr, err := age.Decrypt(armor.NewReader(r), identity)
	if err != nil {
		return fmt.Errorf("creating decrypted reader: %w", err)
	}
	if _, err := io.Copy(w, dr); err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
