// Package registry is the static catalog of record types: which category a
// type belongs to, how it is labelled, whether an entity may hold one or many
// records of it, and how types are ordered inside their category.
//
// The catalog is immutable at runtime and total: every Type constant has
// exactly one entry. A lookup miss for a type constant is a programming
// error, which is why MustGet panics instead of returning an error.
package registry

import "sort"

// Type tags a record and selects its payload shape.
type Type string

const (
	TypeDriversLicense   Type = "DRIVERS_LICENSE"
	TypePassport         Type = "PASSPORT"
	TypeBirthCertificate Type = "BIRTH_CERTIFICATE"
	TypeNationalID       Type = "NATIONAL_ID"

	TypeBloodType    Type = "BLOOD_TYPE"
	TypeAllergy      Type = "ALLERGY"
	TypeMedication   Type = "MEDICATION"
	TypeCondition    Type = "CONDITION"
	TypeImmunization Type = "IMMUNIZATION"

	TypeHealthInsurance Type = "HEALTH_INSURANCE"
	TypePetInsurance    Type = "PET_INSURANCE"

	TypeEmergencyContact Type = "EMERGENCY_CONTACT"

	TypePetMicrochip   Type = "PET_MICROCHIP"
	TypePetVaccination Type = "PET_VACCINATION"
	TypeVetVisit       Type = "VET_VISIT"

	TypeNote          Type = "NOTE"
	TypeOtherDocument Type = "OTHER_DOCUMENT"
)

// Category groups record types on the "add record" surface.
type Category string

const (
	CategoryIdentity  Category = "Identity"
	CategoryMedical   Category = "Medical"
	CategoryInsurance Category = "Insurance"
	CategoryEmergency Category = "Emergency"
	CategoryPets      Category = "Pets"
	CategoryOther     Category = "Other"
)

// Cardinality says whether an entity may hold one or many records of a type.
type Cardinality string

const (
	CardinalitySingle Cardinality = "SINGLE"
	CardinalityMulti  Cardinality = "MULTI"
)

// Entry is one row of the catalog.
type Entry struct {
	Type        Type
	Category    Category
	Label       string
	Cardinality Cardinality
	SortOrder   int
	// Private marks types whose records default to private visibility.
	Private bool
}

var catalog = map[Type]Entry{
	TypeDriversLicense:   {Type: TypeDriversLicense, Category: CategoryIdentity, Label: "Driver's license", Cardinality: CardinalitySingle, SortOrder: 10},
	TypePassport:         {Type: TypePassport, Category: CategoryIdentity, Label: "Passport", Cardinality: CardinalitySingle, SortOrder: 20},
	TypeBirthCertificate: {Type: TypeBirthCertificate, Category: CategoryIdentity, Label: "Birth certificate", Cardinality: CardinalitySingle, SortOrder: 30},
	TypeNationalID:       {Type: TypeNationalID, Category: CategoryIdentity, Label: "National ID", Cardinality: CardinalitySingle, SortOrder: 40, Private: true},

	TypeBloodType:    {Type: TypeBloodType, Category: CategoryMedical, Label: "Blood type", Cardinality: CardinalitySingle, SortOrder: 10},
	TypeAllergy:      {Type: TypeAllergy, Category: CategoryMedical, Label: "Allergy", Cardinality: CardinalityMulti, SortOrder: 20},
	TypeMedication:   {Type: TypeMedication, Category: CategoryMedical, Label: "Medication", Cardinality: CardinalityMulti, SortOrder: 30},
	TypeCondition:    {Type: TypeCondition, Category: CategoryMedical, Label: "Medical condition", Cardinality: CardinalityMulti, SortOrder: 40, Private: true},
	TypeImmunization: {Type: TypeImmunization, Category: CategoryMedical, Label: "Immunization", Cardinality: CardinalityMulti, SortOrder: 50},

	TypeHealthInsurance: {Type: TypeHealthInsurance, Category: CategoryInsurance, Label: "Health insurance", Cardinality: CardinalityMulti, SortOrder: 10},
	TypePetInsurance:    {Type: TypePetInsurance, Category: CategoryInsurance, Label: "Pet insurance", Cardinality: CardinalityMulti, SortOrder: 20},

	TypeEmergencyContact: {Type: TypeEmergencyContact, Category: CategoryEmergency, Label: "Emergency contact", Cardinality: CardinalityMulti, SortOrder: 10},

	TypePetMicrochip:   {Type: TypePetMicrochip, Category: CategoryPets, Label: "Microchip", Cardinality: CardinalitySingle, SortOrder: 10},
	TypePetVaccination: {Type: TypePetVaccination, Category: CategoryPets, Label: "Vaccination", Cardinality: CardinalityMulti, SortOrder: 20},
	TypeVetVisit:       {Type: TypeVetVisit, Category: CategoryPets, Label: "Vet visit", Cardinality: CardinalityMulti, SortOrder: 30},

	TypeNote:          {Type: TypeNote, Category: CategoryOther, Label: "Note", Cardinality: CardinalityMulti, SortOrder: 10},
	TypeOtherDocument: {Type: TypeOtherDocument, Category: CategoryOther, Label: "Other document", Cardinality: CardinalityMulti, SortOrder: 20},
}

// Get looks up the catalog entry for t.
func Get(t Type) (Entry, bool) {
	e, ok := catalog[t]
	return e, ok
}

// MustGet returns the catalog entry for t and panics when t is unknown.
// Use it for type constants; use Get for strings read from storage.
func MustGet(t Type) Entry {
	e, ok := catalog[t]
	if !ok {
		panic("registry: unknown record type " + string(t))
	}
	return e
}

// IsSingle reports whether t allows at most one record per entity. Unknown
// types are treated as multi so stale data never blocks an add.
func IsSingle(t Type) bool {
	e, ok := catalog[t]
	return ok && e.Cardinality == CardinalitySingle
}

// ByCategory returns the entries of a category sorted by SortOrder.
func ByCategory(c Category) []Entry {
	var out []Entry
	for _, e := range catalog {
		if e.Category == c {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Types returns every known type, grouped by category and ordered the way
// ByCategory orders them.
func Types() []Type {
	out := make([]Type, 0, len(catalog))
	for _, c := range Categories() {
		for _, e := range ByCategory(c) {
			out = append(out, e.Type)
		}
	}
	return out
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryIdentity,
		CategoryMedical,
		CategoryInsurance,
		CategoryEmergency,
		CategoryPets,
		CategoryOther,
	}
}
