package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"tbo-go/internal/archive"
	"tbo-go/internal/config"
	"tbo-go/internal/database"
	"tbo-go/internal/encryption"
	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
)

// Options tune an app instance beyond what the config file holds.
type Options struct {
	// Level is the minimum log level. Defaults to Info.
	Level slog.Leveler
	// Echo copies log lines to stderr.
	Echo bool
	// Clock defaults to the real clock.
	Clock tbo.Clock
}

// TBOApp is the application layer between the CLI and TBOService.
// It constructs all dependencies from config, snapshots the store into the
// archive before anything replaces it, and owns the DB lifecycle on Close.
type TBOApp struct {
	cfg       *config.Config
	db        tbo.Database
	archive   tbo.Archive
	encryptor tbo.Encryptor
	service   *tbo.TBOService
	logger    tbo.Logger
	clock     tbo.Clock
	op        *CommandOperation
	logFile   *os.File
}

// NewTBOApp creates a fully wired, initialized TBOApp from the given config.
// operation names the CLI command being run (e.g. "import", "serve").
// The caller must call Close when done.
func NewTBOApp(cfg *config.Config, operation string, opts Options) (*TBOApp, error) {
	clock := opts.Clock
	if clock == nil {
		clock = tbo.RealClock{}
	}

	arch, err := archive.NewArchiveFromConfig(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := clock.Now().UTC().Format("20060102T150405Z") + "-" + operation
	slogger, logFile, err := newLogger(cfg.LogDir, opID, opts.Level, opts.Echo)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating database: %w", err)
	}

	svc := tbo.NewTBOService(db, logger, clock, tbo.TimeOrderedIDGenerator{})
	if err := svc.Init(); err != nil {
		db.Close()
		logFile.Close()
		return nil, err
	}

	return &TBOApp{
		cfg:       cfg,
		db:        db,
		archive:   arch,
		encryptor: enc,
		service:   svc,
		logger:    logger,
		clock:     clock,
		op:        NewCommandOperation(operation, ""),
		logFile:   logFile,
	}, nil
}

// Service exposes the store to the transports.
func (a *TBOApp) Service() *tbo.TBOService { return a.service }

func (a *TBOApp) Logger() tbo.Logger { return a.logger }

func (a *TBOApp) Config() *config.Config { return a.cfg }

// persistOperation records the command in the operations table. Only
// store-replacing commands call it.
func (a *TBOApp) persistOperation(ctx context.Context, parameters string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Parameters = parameters
	op, err := a.db.CreateOperation(ctx, a.op.Operation, parameters, a.clock.Now())
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = op.ID
	return nil
}

// Export writes the whole store to w as "json" or "csv".
func (a *TBOApp) Export(ctx context.Context, format string, w io.Writer) error {
	switch format {
	case "json":
		snapshot, err := a.service.ExportToJSON(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		return nil
	case "csv":
		return a.service.ExportCSV(ctx, w)
	default:
		return fmt.Errorf("%w: unknown export format %q", tbo.ErrInvalidInput, format)
	}
}

// ImportFile replaces the store with the snapshot read from r. The current
// contents are archived first. source is recorded in the history.
func (a *TBOApp) ImportFile(ctx context.Context, r io.Reader, source string) (*model.Snapshot, error) {
	if err := a.persistOperation(ctx, source); err != nil {
		return nil, err
	}

	snapshot, err := DecodeSnapshot(r)
	if err != nil {
		return nil, a.op.Fail(err)
	}
	if _, err := a.ArchiveCurrent(ctx, "import"); err != nil {
		return nil, a.op.Fail(err)
	}
	if err := a.service.ImportFromJSON(ctx, snapshot); err != nil {
		return nil, a.op.Fail(err)
	}
	return snapshot, nil
}

// Clear archives the store and then empties it.
func (a *TBOApp) Clear(ctx context.Context) (string, error) {
	if err := a.persistOperation(ctx, ""); err != nil {
		return "", err
	}

	name, err := a.ArchiveCurrent(ctx, "clear")
	if err != nil {
		return "", a.op.Fail(err)
	}
	if err := a.service.ClearAll(ctx); err != nil {
		return "", a.op.Fail(err)
	}
	return name, nil
}

// ArchiveCurrent stores the current export in the archive and returns its
// name. The snapshot is encrypted when archive.encrypt is set.
func (a *TBOApp) ArchiveCurrent(ctx context.Context, reason string) (string, error) {
	var plain bytes.Buffer
	if err := a.Export(ctx, "json", &plain); err != nil {
		return "", fmt.Errorf("archiving before %s: %w", reason, err)
	}

	encrypt := a.cfg.Archive.Encrypt
	name := archive.SnapshotName(reason, a.clock.Now(), encrypt)

	data := &plain
	if encrypt {
		if !a.encryptor.IsConfigured() {
			return "", fmt.Errorf("archiving before %s: %w", reason, encryption.ErrNotConfigured)
		}
		var sealed bytes.Buffer
		if err := a.encryptor.Encrypt(&plain, &sealed); err != nil {
			return "", fmt.Errorf("encrypting snapshot: %w", err)
		}
		data = &sealed
	}

	size := int64(data.Len())
	if err := a.archive.PutSnapshot(name, data, size); err != nil {
		return "", fmt.Errorf("storing snapshot %s: %w", name, err)
	}

	a.logger.Info("snapshot archived", "name", name, "bytes", size, "encrypted", encrypt)
	return name, nil
}

// ListArchives returns archived snapshot names, oldest first.
func (a *TBOApp) ListArchives() ([]string, error) {
	return a.archive.ListSnapshots()
}

// RestoreArchive replaces the store with an archived snapshot. The current
// contents are archived first, so a restore can itself be undone.
// passphrase is only called for encrypted snapshots.
func (a *TBOApp) RestoreArchive(ctx context.Context, name string, passphrase func() (string, error)) error {
	if err := a.persistOperation(ctx, name); err != nil {
		return err
	}

	snapshot, err := a.loadArchived(name, passphrase)
	if err != nil {
		return a.op.Fail(err)
	}
	if _, err := a.ArchiveCurrent(ctx, "restore"); err != nil {
		return a.op.Fail(err)
	}
	if err := a.service.ImportFromJSON(ctx, snapshot); err != nil {
		return a.op.Fail(err)
	}

	a.logger.Info("snapshot restored", "name", name)
	return nil
}

func (a *TBOApp) loadArchived(name string, passphrase func() (string, error)) (*model.Snapshot, error) {
	var stored bytes.Buffer
	if err := a.archive.GetSnapshot(name, &stored); err != nil {
		return nil, err
	}
	if !archive.IsEncrypted(name) {
		return DecodeSnapshot(&stored)
	}

	if passphrase == nil {
		return nil, errors.New("snapshot is encrypted and no passphrase source was given")
	}
	pass, err := passphrase()
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	dc, err := a.encryptor.Unlock(pass)
	if err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}

	var plain bytes.Buffer
	if err := dc.Decrypt(&stored, &plain); err != nil {
		return nil, fmt.Errorf("decrypting snapshot %s: %w", name, err)
	}
	return DecodeSnapshot(&plain)
}

// History returns the most recent store-replacing operations.
func (a *TBOApp) History(ctx context.Context, limit int) ([]*tbo.Operation, error) {
	return a.service.GetHistory(ctx, limit)
}

// Close finishes a persisted operation record and releases resources.
func (a *TBOApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishOperation(context.Background(), a.op.ID, a.op.Status, a.clock.Now()); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// DecodeSnapshot parses an export file. Malformed JSON is invalid input.
func DecodeSnapshot(r io.Reader) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot: %w", tbo.ErrInvalidInput, err)
	}
	return &snapshot, nil
}
