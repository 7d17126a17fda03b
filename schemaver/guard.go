// Package schemaver guards the on-device storage format. The stored data has
// no migration path between format versions: when the persisted version does
// not match the version this build writes, the guard purges every domain
// collection and stamps the current version, giving the app a clean slate.
package schemaver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/kv"
)

// CurrentVersion is the storage-format version this build reads and writes.
// Bump it on any incompatible change to the persisted shapes.
const CurrentVersion = "2"

// Guard compares the persisted schema version against CurrentVersion and
// resets incompatible data. It must run before any store touches the backend.
type Guard struct {
	be  kv.Backend
	log logging.Logger
}

func NewGuard(be kv.Backend, log logging.Logger) *Guard {
	return &Guard{be: be, log: log.With("component", "schemaver")}
}

// Run checks the stored version. On a match it performs no writes at all.
// On a mismatch (including a fresh database) it deletes every domain key in
// one batch and stamps CurrentVersion.
func (g *Guard) Run(ctx context.Context) error {
	stored, err := g.be.Get(ctx, kv.KeySchemaVersion)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if err == nil && string(stored) == CurrentVersion {
		return nil
	}

	keys, err := g.be.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate keys: %w", err)
	}

	var purge []string
	for _, key := range keys {
		if isDomainKey(key) {
			purge = append(purge, key)
		}
	}

	if len(purge) > 0 {
		g.log.Warn(ctx, "schema version mismatch, resetting stored data",
			"stored", string(stored), "current", CurrentVersion, "keys", len(purge))
		if err := g.be.Delete(ctx, purge...); err != nil {
			return fmt.Errorf("failed to purge stored data: %w", err)
		}
	}

	if err := g.be.Set(ctx, kv.KeySchemaVersion, []byte(CurrentVersion)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}
	return nil
}

// isDomainKey reports whether a key belongs to the purge set. Keys outside
// this set (the version scalar itself, backend internals) survive a reset.
func isDomainKey(key string) bool {
	switch key {
	case kv.KeyPeople, kv.KeyPets, kv.KeyHouseholds, kv.KeyContacts, kv.KeyDocuments:
		return true
	}
	return strings.HasPrefix(key, kv.PrefixRecords) ||
		strings.HasPrefix(key, kv.PrefixOnboarding)
}
