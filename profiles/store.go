package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/kv"
)

// Store persists the four global profile collections. It deliberately keeps
// the plain read-modify-write model: profile edits come from a single
// settings surface and do not need the record store's per-entity locking.
type Store struct {
	be  kv.Backend
	log logging.Logger
	now func() time.Time
}

func NewStore(be kv.Backend, log logging.Logger) *Store {
	return &Store{
		be:  be,
		log: log.With("component", "profiles"),
		now: time.Now,
	}
}

// loadList reads and decodes a JSON collection. Missing keys and corrupt
// blobs both yield an empty list.
func loadList[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	value, err := s.be.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		s.log.Warn(ctx, "collection is not valid JSON, treating as empty", "key", key)
		return nil, nil
	}
	return items, nil
}

func saveList[T any](ctx context.Context, s *Store, key string, items []T) error {
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.be.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// upsertByID replaces the item with the same id or prepends a new one.
func upsertByID[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append([]T{item}, items...)
}

func deleteByID[T any](items []T, target string, id func(T) string) ([]T, bool) {
	kept := items[:0]
	for _, it := range items {
		if id(it) != target {
			kept = append(kept, it)
		}
	}
	return kept, len(kept) != len(items)
}

// --- People ---

func (s *Store) ListPeople(ctx context.Context) ([]Person, error) {
	raw, err := loadList[Person](ctx, s, kv.KeyPeople)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]Person, 0, len(raw))
	for _, p := range raw {
		if norm, ok := NormalizePerson(p, now); ok {
			out = append(out, norm)
		}
	}
	return out, nil
}

func (s *Store) UpsertPerson(ctx context.Context, p Person) (*Person, error) {
	norm, ok := NormalizePerson(p, s.now().UTC())
	if !ok {
		return nil, common.ErrorInvalidProfile
	}
	people, err := s.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	people = upsertByID(people, norm, func(x Person) string { return x.ID })
	if err := saveList(ctx, s, kv.KeyPeople, people); err != nil {
		return nil, err
	}
	return &norm, nil
}

func (s *Store) DeletePerson(ctx context.Context, id string) error {
	people, err := s.ListPeople(ctx)
	if err != nil {
		return err
	}
	kept, changed := deleteByID(people, id, func(x Person) string { return x.ID })
	if !changed {
		return nil
	}
	return saveList(ctx, s, kv.KeyPeople, kept)
}

// --- Pets ---

func (s *Store) ListPets(ctx context.Context) ([]Pet, error) {
	raw, err := loadList[Pet](ctx, s, kv.KeyPets)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]Pet, 0, len(raw))
	for _, p := range raw {
		if norm, ok := NormalizePet(p, now); ok {
			out = append(out, norm)
		}
	}
	return out, nil
}

func (s *Store) UpsertPet(ctx context.Context, p Pet) (*Pet, error) {
	norm, ok := NormalizePet(p, s.now().UTC())
	if !ok {
		return nil, common.ErrorInvalidProfile
	}
	pets, err := s.ListPets(ctx)
	if err != nil {
		return nil, err
	}
	pets = upsertByID(pets, norm, func(x Pet) string { return x.ID })
	if err := saveList(ctx, s, kv.KeyPets, pets); err != nil {
		return nil, err
	}
	return &norm, nil
}

func (s *Store) DeletePet(ctx context.Context, id string) error {
	pets, err := s.ListPets(ctx)
	if err != nil {
		return err
	}
	kept, changed := deleteByID(pets, id, func(x Pet) string { return x.ID })
	if !changed {
		return nil
	}
	return saveList(ctx, s, kv.KeyPets, kept)
}

// --- Households ---

func (s *Store) ListHouseholds(ctx context.Context) ([]Household, error) {
	raw, err := loadList[Household](ctx, s, kv.KeyHouseholds)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]Household, 0, len(raw))
	for _, h := range raw {
		if norm, ok := NormalizeHousehold(h, now); ok {
			out = append(out, norm)
		}
	}
	return out, nil
}

func (s *Store) UpsertHousehold(ctx context.Context, h Household) (*Household, error) {
	norm, ok := NormalizeHousehold(h, s.now().UTC())
	if !ok {
		return nil, common.ErrorInvalidProfile
	}
	households, err := s.ListHouseholds(ctx)
	if err != nil {
		return nil, err
	}
	households = upsertByID(households, norm, func(x Household) string { return x.ID })
	if err := saveList(ctx, s, kv.KeyHouseholds, households); err != nil {
		return nil, err
	}
	return &norm, nil
}

func (s *Store) DeleteHousehold(ctx context.Context, id string) error {
	households, err := s.ListHouseholds(ctx)
	if err != nil {
		return err
	}
	kept, changed := deleteByID(households, id, func(x Household) string { return x.ID })
	if !changed {
		return nil
	}
	return saveList(ctx, s, kv.KeyHouseholds, kept)
}

// --- Contacts ---

func (s *Store) ListContacts(ctx context.Context) ([]Contact, error) {
	raw, err := loadList[Contact](ctx, s, kv.KeyContacts)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]Contact, 0, len(raw))
	for _, c := range raw {
		if norm, ok := NormalizeContact(c, now); ok {
			out = append(out, norm)
		}
	}
	return out, nil
}

func (s *Store) UpsertContact(ctx context.Context, c Contact) (*Contact, error) {
	norm, ok := NormalizeContact(c, s.now().UTC())
	if !ok {
		return nil, common.ErrorInvalidProfile
	}
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	contacts = upsertByID(contacts, norm, func(x Contact) string { return x.ID })
	if err := saveList(ctx, s, kv.KeyContacts, contacts); err != nil {
		return nil, err
	}
	return &norm, nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return err
	}
	kept, changed := deleteByID(contacts, id, func(x Contact) string { return x.ID })
	if !changed {
		return nil
	}
	return saveList(ctx, s, kv.KeyContacts, kept)
}
