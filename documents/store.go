package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/kv"
	"github.com/mihailsb/homevault/records"
)

// Store persists the global document list. Writes are serialized; the whole
// list is rewritten on every change, matching the record store.
type Store struct {
	be  kv.Backend
	log logging.Logger
	mu  sync.Mutex
	now func() time.Time
}

func NewStore(be kv.Backend, log logging.Logger) *Store {
	return &Store{
		be:  be,
		log: log.With("component", "documents"),
		now: time.Now,
	}
}

func (s *Store) readList(ctx context.Context) ([]Document, error) {
	value, err := s.be.Get(ctx, kv.KeyDocuments)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document list: %w", err)
	}

	var docs []Document
	if err := json.Unmarshal(value, &docs); err != nil {
		s.log.Warn(ctx, "document list is not valid JSON, treating as empty")
		return nil, nil
	}
	return docs, nil
}

func (s *Store) writeList(ctx context.Context, docs []Document) error {
	value, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode document list: %w", err)
	}
	if err := s.be.Set(ctx, kv.KeyDocuments, value); err != nil {
		return fmt.Errorf("failed to write document list: %w", err)
	}
	return nil
}

// List returns all documents, normalized, deduplicated and sorted most
// recent first.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	docs, err := s.readList(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeList(docs, s.now().UTC()), nil
}

// GetByID returns one document or common.ErrorNotFound. Dangling attachment
// references resolve here to ErrorNotFound, which readers treat as
// "missing", not as a failure.
func (s *Store) GetByID(ctx context.Context, id string) (*Document, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// Save upserts a document. A document failing normalization is rejected with
// common.ErrorInvalidDocument. Duplicates of an already-stored document (by
// content hash and locator) collapse onto the existing entry, which is
// returned instead.
func (s *Store) Save(ctx context.Context, doc Document) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	norm, ok := Normalize(doc, now)
	if !ok {
		return nil, common.ErrorInvalidDocument
	}

	docs, err := s.readList(ctx)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range docs {
		if docs[i].ID == norm.ID {
			if !docs[i].CreatedAt.IsZero() {
				norm.CreatedAt = docs[i].CreatedAt
			}
			docs[i] = norm
			replaced = true
			break
		}
	}
	if !replaced {
		// a new document duplicating a stored one (same content hash and
		// locator) is never inserted; the stored entry keeps its id and
		// metadata and is returned below
		duplicate := false
		for i := range docs {
			if docs[i].dedupKey() == norm.dedupKey() {
				duplicate = true
				break
			}
		}
		if !duplicate {
			docs = append([]Document{norm}, docs...)
		}
	}

	docs = NormalizeList(docs, now)
	if err := s.writeList(ctx, docs); err != nil {
		return nil, err
	}

	for i := range docs {
		if docs[i].dedupKey() == norm.dedupKey() {
			return &docs[i], nil
		}
	}
	// unreachable: the saved document always survives normalization
	return &norm, nil
}

// Delete removes a document by id. Records referencing it keep their
// attachment references; those become dangling and resolve as missing.
// A missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readList(ctx)
	if err != nil {
		return err
	}

	kept := docs[:0]
	for _, d := range docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		return nil
	}
	return s.writeList(ctx, kept)
}

// RecomputeLinks re-derives LinkedTo from the authoritative attachment lists
// of recs. Only link entries originating from the given records are replaced;
// entries contributed by records outside recs stay untouched, so callers may
// pass just the records they changed. A given record that no longer attaches
// a document removes its entry from that document.
func (s *Store) RecomputeLinks(ctx context.Context, recs []records.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	given := make(map[string]struct{}, len(recs))
	refs := make(map[string][]RecordRef)
	for _, rec := range recs {
		given[rec.ID] = struct{}{}
		for _, a := range rec.Attachments {
			refs[a.DocumentID] = append(refs[a.DocumentID], RecordRef{
				EntityID: rec.EntityID,
				RecordID: rec.ID,
				Type:     rec.Type,
			})
		}
	}

	docs, err := s.readList(ctx)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	docs = NormalizeList(docs, now)
	for i := range docs {
		linked := make([]RecordRef, 0, len(docs[i].LinkedTo))
		for _, ref := range docs[i].LinkedTo {
			if _, ok := given[ref.RecordID]; !ok {
				linked = append(linked, ref)
			}
		}
		docs[i].LinkedTo = append(linked, refs[docs[i].ID]...)
	}
	return s.writeList(ctx, docs)
}
