package testutil

import (
	"testing"

	"tbo-go/internal/archive"
	"tbo-go/internal/encryption"
	"tbo-go/internal/tbo"
)

// NewTestService returns an initialized store over a fresh in-memory database,
// with a fixed clock and sequential ids.
func NewTestService(t *testing.T) (*tbo.TBOService, *StubClock) {
	t.Helper()

	clock := FixedClock()
	svc := tbo.NewTBOService(NewTestDatabase(t), tbo.NewNopLogger(), clock, NewStubIDGenerator())
	if err := svc.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return svc, clock
}

// NewTestArchive creates a new in-memory archive for testing.
func NewTestArchive() tbo.Archive {
	return archive.NewMemoryArchive()
}

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() tbo.Encryptor {
	return encryption.NewTestEncryptor()
}
