package homevault

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihailsb/homevault/config"
	"github.com/mihailsb/homevault/internal/logging"
	"github.com/mihailsb/homevault/profiles"
	"github.com/mihailsb/homevault/records"
	"github.com/mihailsb/homevault/registry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(dir, "vault.db")
	cfg.BlobDir = filepath.Join(dir, "files")
	cfg.LocalOnly = true
	return cfg
}

func openApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := Open(context.Background(), cfg, logging.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestOpen_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	app := openApp(t, cfg)

	// profile
	jane, err := app.Profiles.UpsertPerson(ctx, profiles.NewPerson("Jane Doe"))
	require.NoError(t, err)

	// one driver's license record with a typed payload
	rec := records.New(jane.ID, registry.TypeDriversLicense)
	rec.Title = "Driver's license"
	rec, err = rec.WithPayload(records.DriversLicense{
		FullName:      "Jane Doe",
		LicenseNumber: "D123-4567",
		IssuingState:  "CA",
	})
	require.NoError(t, err)

	saved, err := app.Records.Upsert(ctx, jane.ID, rec)
	require.NoError(t, err)

	// singleton check: a second license for the same entity is visible to
	// the caller before deciding to replace
	existing, err := app.Records.FindByType(ctx, jane.ID, registry.TypeDriversLicense)
	require.NoError(t, err)
	require.Len(t, existing, 1)
	assert.True(t, registry.IsSingle(registry.TypeDriversLicense))

	// attach a scan, document ends up linked both ways
	doc, linked, err := app.AttachFile(ctx, jane.ID, saved.ID,
		"license.jpg", "image/jpeg", []byte("front scan"), records.RoleFront, "Front")
	require.NoError(t, err)
	assert.True(t, linked.HasAttachment(doc.ID))
	require.Len(t, doc.LinkedTo, 1)
	assert.Equal(t, saved.ID, doc.LinkedTo[0].RecordID)
	assert.Equal(t, jane.ID, doc.LinkedTo[0].EntityID)
}

func TestOpen_AttachFile_DuplicateContentCollapses(t *testing.T) {
	ctx := context.Background()
	app := openApp(t, testConfig(t))

	rec := records.New("person-1", registry.TypePassport)
	saved, err := app.Records.Upsert(ctx, "person-1", rec)
	require.NoError(t, err)

	docA, _, err := app.AttachFile(ctx, "person-1", saved.ID,
		"scan.pdf", "application/pdf", []byte("same bytes"), records.RolePage, "")
	require.NoError(t, err)

	// same bytes land under a fresh random URI, so this is a new document,
	// not a duplicate of docA
	docB, _, err := app.AttachFile(ctx, "person-1", saved.ID,
		"scan.pdf", "application/pdf", []byte("same bytes"), records.RolePage, "")
	require.NoError(t, err)

	assert.Equal(t, docA.ContentHash, docB.ContentHash)
	assert.NotEqual(t, docA.URI, docB.URI)

	docs, err := app.Documents.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestOpen_AttachFile_KeepsLinksOfOtherRecords(t *testing.T) {
	ctx := context.Background()
	app := openApp(t, testConfig(t))

	license, err := app.Records.Upsert(ctx, "person-1", records.New("person-1", registry.TypeDriversLicense))
	require.NoError(t, err)
	passport, err := app.Records.Upsert(ctx, "person-1", records.New("person-1", registry.TypePassport))
	require.NoError(t, err)

	licenseDoc, _, err := app.AttachFile(ctx, "person-1", license.ID,
		"license.jpg", "image/jpeg", []byte("license scan"), records.RoleFront, "")
	require.NoError(t, err)

	// attaching to a different record must not wipe the license doc's link
	_, _, err = app.AttachFile(ctx, "person-1", passport.ID,
		"passport.jpg", "image/jpeg", []byte("passport scan"), records.RolePage, "")
	require.NoError(t, err)

	got, err := app.Documents.GetByID(ctx, licenseDoc.ID)
	require.NoError(t, err)
	require.Len(t, got.LinkedTo, 1)
	assert.Equal(t, license.ID, got.LinkedTo[0].RecordID)
}

func TestOpen_DataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	app := openApp(t, cfg)
	rec := records.New("person-1", registry.TypeNote)
	rec.Title = "Wifi password location"
	_, err := app.Records.Upsert(ctx, "person-1", rec)
	require.NoError(t, err)
	require.NoError(t, app.MarkOnboardingDone(ctx, "welcome"))
	require.NoError(t, app.Close())

	// the guard matches on reopen and leaves everything in place
	reopened := openApp(t, cfg)
	recs, err := reopened.Records.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Wifi password location", recs[0].Title)

	done, err := reopened.OnboardingDone(ctx, "welcome")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestOpen_EncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Passphrase = "correct horse battery staple"

	app := openApp(t, cfg)
	rec := records.New("person-1", registry.TypeBloodType)
	rec, err := rec.WithPayload(records.BloodType{ABO: "O", RhFactor: "+"})
	require.NoError(t, err)
	_, err = app.Records.Upsert(ctx, "person-1", rec)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	// same passphrase reads it back
	reopened := openApp(t, cfg)
	recs, err := reopened.Records.ListForEntity(ctx, "person-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.JSONEq(t, `{"abo":"O","rhFactor":"+"}`, string(recs[0].Payload))
}

func TestOnboardingFlags(t *testing.T) {
	ctx := context.Background()
	app := openApp(t, testConfig(t))

	done, err := app.OnboardingDone(ctx, "tour")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, app.MarkOnboardingDone(ctx, "tour"))

	done, err = app.OnboardingDone(ctx, "tour")
	require.NoError(t, err)
	assert.True(t, done)
}
