// Package homevault wires the storage core of a personal records organizer:
// a key-value backend (SQLite, optionally encrypted at rest), the schema
// version guard, and the record, document and profile stores on top of it.
//
// Open is the single entry point; the guard always runs before any store
// touches the backend.
package homevault

import (
	"context"
	"errors"
	"fmt"

	"github.com/mihailsb/homevault/blob"
	"github.com/mihailsb/homevault/config"
	"github.com/mihailsb/homevault/documents"
	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/kv"
	"github.com/mihailsb/homevault/profiles"
	"github.com/mihailsb/homevault/records"
	"github.com/mihailsb/homevault/schemaver"
)

// App bundles the opened stores. All fields are ready to use after Open.
type App struct {
	Records   *records.Store
	Documents *documents.Store
	Profiles  *profiles.Store
	Blobs     blob.Store

	backend kv.Backend
	log     logging.Logger
}

// Open opens the database at cfg.DatabasePath, wraps value encryption when a
// passphrase is configured, runs the schema-version guard and constructs the
// stores. The blob store is local or S3-backed depending on cfg.LocalOnly.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	sqlite, err := kv.OpenSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var backend kv.Backend = sqlite
	if cfg.Passphrase != "" {
		backend, err = kv.NewEncryptedBackend(ctx, sqlite, cfg.Passphrase)
		if err != nil {
			_ = sqlite.Close()
			return nil, fmt.Errorf("failed to enable encryption: %w", err)
		}
	}

	// the guard must finish before any store reads
	if err := schemaver.NewGuard(backend, log).Run(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}

	var blobs blob.Store
	if cfg.LocalOnly {
		blobs, err = blob.NewDiskStore(cfg.BlobDir)
	} else {
		blobs, err = blob.NewS3Store(ctx, blob.S3Options{
			RootUser:      cfg.S3RootUser,
			RootPassword:  cfg.S3RootPassword,
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			BaseEndpoint:  cfg.S3BaseEndpoint,
			PresignExpiry: cfg.PresignExpiry,
		})
	}
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}

	return &App{
		Records:   records.NewStore(backend, log),
		Documents: documents.NewStore(backend, log),
		Profiles:  profiles.NewStore(backend, log),
		Blobs:     blobs,
		backend:   backend,
		log:       log,
	}, nil
}

// Close releases the backend. Stores must not be used afterwards.
func (a *App) Close() error {
	return a.backend.Close()
}

// AttachFile stores data as a blob, registers a document for it and links the
// document to the given record, persisting the updated record. It returns the
// saved document and record. Duplicate content (same hash and URI) collapses
// onto the already stored document.
func (a *App) AttachFile(ctx context.Context, entityID, recordID string, fileName, mimeType string, data []byte, role records.Role, label string) (*documents.Document, *records.Record, error) {
	rec, err := a.Records.GetByID(ctx, entityID, recordID)
	if err != nil {
		return nil, nil, err
	}

	stored, err := a.Blobs.Put(ctx, fileName, mimeType, data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := documents.New(stored.URI, fileName, mimeType)
	doc.SizeBytes = stored.SizeBytes
	doc.ContentHash = stored.ContentHash

	saved, err := a.Documents.Save(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	linked := records.LinkDocument(*rec, saved.ID, role, label)
	updated, err := a.Records.Upsert(ctx, entityID, linked)
	if err != nil {
		return nil, nil, err
	}

	if err := a.Documents.RecomputeLinks(ctx, []records.Record{*updated}); err != nil {
		return nil, nil, err
	}

	// re-read so LinkedTo reflects the recompute
	saved, err = a.Documents.GetByID(ctx, saved.ID)
	if err != nil {
		return nil, nil, err
	}
	return saved, updated, nil
}

// Onboarding flags are per-feature "seen it" markers. They live under their
// own key prefix and are cleared together with the collections on a schema
// reset.

func (a *App) MarkOnboardingDone(ctx context.Context, flag string) error {
	return a.backend.Set(ctx, kv.PrefixOnboarding+flag, []byte("1"))
}

func (a *App) OnboardingDone(ctx context.Context, flag string) (bool, error) {
	_, err := a.backend.Get(ctx, kv.PrefixOnboarding+flag)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	return false, err
}
