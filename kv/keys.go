package kv

// Logical collection keys. The schema-version guard enumerates these names
// and prefixes when resetting incompatible data, so every new collection
// must be added here.
const (
	// KeySchemaVersion holds the storage-format version scalar.
	KeySchemaVersion = "schema_version"

	// Global collection lists.
	KeyPeople     = "people"
	KeyPets       = "pets"
	KeyHouseholds = "households"
	KeyContacts   = "contacts"
	KeyDocuments  = "documents"

	// PrefixRecords namespaces the per-entity record lists.
	PrefixRecords = "records:"

	// PrefixOnboarding namespaces the "onboarding completed" flags cleared
	// together with the collections.
	PrefixOnboarding = "onboarding:"
)

// RecordsKey returns the storage key of the record list owned by an entity.
func RecordsKey(entityID string) string {
	return PrefixRecords + entityID
}
