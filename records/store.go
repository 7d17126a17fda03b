package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/kv"
	"github.com/mihailsb/homevault/registry"
)

// Store is the single source of truth for per-entity record lists. Every
// read and write goes through normalization, so callers only ever see
// current-shape records.
//
// Upsert and Delete are serialized per entity id; a list followed by an
// upsert from two goroutines still resolves as last-write-wins.
type Store struct {
	be    kv.Backend
	log   logging.Logger
	locks *xsync.MapOf[string, *sync.Mutex]
	now   func() time.Time
}

func NewStore(be kv.Backend, log logging.Logger) *Store {
	return &Store{
		be:    be,
		log:   log.With("component", "records"),
		locks: xsync.NewMapOf[string, *sync.Mutex](),
		now:   time.Now,
	}
}

func (s *Store) entityLock(entityID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrCompute(entityID, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	return mu
}

// readList loads the raw persisted list for an entity. Malformed stored data
// is recovered, never surfaced: an undecodable list yields an empty one, an
// undecodable item is skipped. Backend I/O failures do propagate.
func (s *Store) readList(ctx context.Context, entityID string) ([]Record, error) {
	value, err := s.be.Get(ctx, kv.RecordsKey(entityID))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record list: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		s.log.Warn(ctx, "record list is not valid JSON, treating as empty", "entity", entityID)
		return nil, nil
	}

	recs := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			s.log.Warn(ctx, "skipping undecodable record item", "entity", entityID)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *Store) writeList(ctx context.Context, entityID string, recs []Record) error {
	value, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode record list: %w", err)
	}
	if err := s.be.Set(ctx, kv.RecordsKey(entityID), value); err != nil {
		return fmt.Errorf("failed to write record list: %w", err)
	}
	return nil
}

// ListForEntity returns the entity's records, normalized and sorted by
// UpdatedAt descending. An entity without records yields an empty slice.
func (s *Store) ListForEntity(ctx context.Context, entityID string) ([]Record, error) {
	recs, err := s.readList(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return NormalizeList(recs, s.now().UTC()), nil
}

// GetByID returns one record or common.ErrorNotFound.
func (s *Store) GetByID(ctx context.Context, entityID, recordID string) (*Record, error) {
	recs, err := s.ListForEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == recordID {
			return &recs[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// FindByType returns the entity's records of one type, most recent first.
// For SINGLE-cardinality types the caller uses this to redirect "add" to
// "edit" when a record already exists.
func (s *Store) FindByType(ctx context.Context, entityID string, t registry.Type) ([]Record, error) {
	recs, err := s.ListForEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, 1)
	for _, rec := range recs {
		if rec.Type == t {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Upsert saves rec under entityID. An existing record with the same id is
// replaced in place keeping its original CreatedAt; a new record is
// prepended with a fresh one. The whole list is rewritten in a single
// backend write, and the returned record is shape-identical to what was
// persisted.
func (s *Store) Upsert(ctx context.Context, entityID string, rec Record) (*Record, error) {
	mu := s.entityLock(entityID)
	mu.Lock()
	defer mu.Unlock()

	recs, err := s.readList(ctx, entityID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec.EntityID = entityID
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec = Normalize(rec, now)
	rec.UpdatedAt = now

	replaced := false
	for i := range recs {
		if recs[i].ID == rec.ID {
			if !recs[i].CreatedAt.IsZero() {
				rec.CreatedAt = recs[i].CreatedAt
			}
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		rec.CreatedAt = now
		recs = append([]Record{rec}, recs...)
	}

	// normalizing the rest of the list on the way out keeps stale items
	// from surviving a write untouched
	recs = NormalizeList(recs, now)
	if err := s.writeList(ctx, entityID, recs); err != nil {
		return nil, err
	}

	// normalize-for-edit: hand back exactly the persisted shape
	rec = Normalize(rec, now)
	return &rec, nil
}

// Delete removes a record by id. A missing id is not an error and leaves
// the list untouched.
func (s *Store) Delete(ctx context.Context, entityID, recordID string) error {
	mu := s.entityLock(entityID)
	mu.Lock()
	defer mu.Unlock()

	recs, err := s.readList(ctx, entityID)
	if err != nil {
		return err
	}

	kept := recs[:0]
	for _, rec := range recs {
		if rec.ID != recordID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}
	return s.writeList(ctx, entityID, kept)
}
