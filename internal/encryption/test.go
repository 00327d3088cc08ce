package encryption

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"tbo-go/internal/tbo"
)

// plainMarker prefixes output of TestEncryptor so tests can tell an
// "encrypted" archive from a plain one.
var plainMarker = []byte("TBO-TEST-ENCRYPTED\n")

// TestEncryptor is a reversible stand-in for AgeEncryptor. It needs no keys,
// and Unlock only rejects the passphrase "wrong".
type TestEncryptor struct {
	setupCalled bool
}

var _ tbo.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.setupCalled = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(plainMarker); err != nil {
		return fmt.Errorf("writing marker: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (tbo.DecryptionContext, error) {
	if passphrase == "wrong" {
		return nil, fmt.Errorf("incorrect passphrase")
	}
	return TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

// TestDecryptionContext strips the marker written by TestEncryptor.
type TestDecryptionContext struct{}

var _ tbo.DecryptionContext = TestDecryptionContext{}

func (TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	marker := make([]byte, len(plainMarker))
	if _, err := io.ReadFull(br, marker); err != nil {
		return fmt.Errorf("reading marker: %w", err)
	}
	if !bytes.Equal(marker, plainMarker) {
		return fmt.Errorf("data was not produced by TestEncryptor")
	}
	if _, err := io.Copy(w, br); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
