package records

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihailsb/homevault/internal/common"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/kv"
	"github.com/mihailsb/homevault/registry"
)

func setupStore(t *testing.T) (*Store, *kv.MemoryBackend) {
	t.Helper()
	be := kv.NewMemoryBackend()
	return NewStore(be, logging.NewDiscardLogger()), be
}

func TestStore_ListForEntity_Empty(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	recs, err := s.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStore_UpsertThenGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	rec := New("person-1", registry.TypeDriversLicense)
	rec.Title = "License"
	rec.Payload = json.RawMessage(`{"fullName":"Jane Doe","extraneous":"field"}`)

	saved, err := s.Upsert(ctx, "person-1", rec)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, "person-1", rec.ID)
	require.NoError(t, err)

	// what comes back equals what was persisted, not the raw input
	assert.JSONEq(t, `{"fullName":"Jane Doe"}`, string(got.Payload))
	assert.Equal(t, saved.Payload, got.Payload)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "person-1", got.EntityID)
}

func TestStore_Upsert_NewRecordPrepended(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	first, err := s.Upsert(ctx, "person-1", New("person-1", registry.TypeAllergy))
	require.NoError(t, err)

	// later updates sort first; give the second record a later timestamp
	s.now = func() time.Time { return time.Now().Add(time.Second) }
	second, err := s.Upsert(ctx, "person-1", New("person-1", registry.TypeAllergy))
	require.NoError(t, err)

	recs, err := s.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second.ID, recs[0].ID)
	assert.Equal(t, first.ID, recs[1].ID)
}

func TestStore_Upsert_ReplacePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	rec := New("person-1", registry.TypeNote)
	saved, err := s.Upsert(ctx, "person-1", rec)
	require.NoError(t, err)
	require.Equal(t, created, saved.CreatedAt)

	later := created.Add(48 * time.Hour)
	s.now = func() time.Time { return later }

	saved.Title = "edited"
	edited, err := s.Upsert(ctx, "person-1", *saved)
	require.NoError(t, err)

	assert.Equal(t, created, edited.CreatedAt)
	assert.Equal(t, later, edited.UpdatedAt)

	recs, err := s.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "edited", recs[0].Title)
}

func TestStore_Upsert_AssignsIDWhenMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	saved, err := s.Upsert(ctx, "person-1", Record{Type: registry.TypeNote})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestStore_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	_, err := s.GetByID(ctx, "person-1", "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	a, err := s.Upsert(ctx, "person-1", New("person-1", registry.TypeNote))
	require.NoError(t, err)
	b, err := s.Upsert(ctx, "person-1", New("person-1", registry.TypeNote))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "person-1", a.ID))

	_, err = s.GetByID(ctx, "person-1", a.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	// deleting a nonexistent id neither errors nor touches other records
	require.NoError(t, s.Delete(ctx, "person-1", "nope"))
	recs, err := s.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, b.ID, recs[0].ID)
}

func TestStore_SingletonCollapseCheck(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	// the caller-side contract: before adding a SINGLE type, look up the
	// existing record and redirect to edit
	existing, err := s.FindByType(ctx, "person-1", registry.TypeDriversLicense)
	require.NoError(t, err)
	require.Empty(t, existing)

	rec := New("person-1", registry.TypeDriversLicense)
	rec.Payload = json.RawMessage(`{"fullName":"Jane Doe"}`)
	saved, err := s.Upsert(ctx, "person-1", rec)
	require.NoError(t, err)

	existing, err = s.FindByType(ctx, "person-1", registry.TypeDriversLicense)
	require.NoError(t, err)
	require.Len(t, existing, 1)
	require.True(t, registry.IsSingle(existing[0].Type))

	// redirect-to-edit: same id, not a second record
	edit := existing[0]
	edit.Title = "renewed"
	_, err = s.Upsert(ctx, "person-1", edit)
	require.NoError(t, err)

	recs, err := s.FindByType(ctx, "person-1", registry.TypeDriversLicense)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, saved.ID, recs[0].ID)
}

func TestStore_ListSurvivesCorruptStoredData(t *testing.T) {
	ctx := context.Background()
	s, be := setupStore(t)

	// whole value corrupt
	require.NoError(t, be.Set(ctx, kv.RecordsKey("person-1"), []byte(`{{{`)))
	recs, err := s.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	assert.Empty(t, recs)

	// one item corrupt, one fine: the fine one survives with its payload reset
	blob := []byte(`[ "not an object", {"id":"r1","recordType":"ALLERGY","payload":17} ]`)
	require.NoError(t, be.Set(ctx, kv.RecordsKey("person-2"), blob))

	recs, err = s.ListForEntity(ctx, "person-2")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r1", recs[0].ID)
	assert.JSONEq(t, `{}`, string(recs[0].Payload))
}

func TestStore_EntitiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	_, err := s.Upsert(ctx, "person-1", New("person-1", registry.TypeNote))
	require.NoError(t, err)

	recs, err := s.ListForEntity(ctx, "person-2")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
