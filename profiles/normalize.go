package profiles

import (
	"strings"
	"time"
)

// DefaultSpecies is the fallback for pets persisted without a species.
const DefaultSpecies = "Other"

// Profile normalization follows the document policy, not the record one:
// an item missing its identity fields (id plus a non-empty name) carries no
// usable information and is dropped rather than defaulted.

func NormalizePerson(p Person, now time.Time) (Person, bool) {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.ID == "" || p.FullName == "" {
		return Person{}, false
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return p, true
}

func NormalizePet(p Pet, now time.Time) (Pet, bool) {
	p.PetName = strings.TrimSpace(p.PetName)
	if p.ID == "" || p.PetName == "" {
		return Pet{}, false
	}
	if strings.TrimSpace(p.Species) == "" {
		p.Species = DefaultSpecies
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return p, true
}

func NormalizeHousehold(h Household, now time.Time) (Household, bool) {
	h.Name = strings.TrimSpace(h.Name)
	if h.ID == "" || h.Name == "" {
		return Household{}, false
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	return h, true
}

func NormalizeContact(c Contact, now time.Time) (Contact, bool) {
	c.FullName = strings.TrimSpace(c.FullName)
	if c.ID == "" || c.FullName == "" {
		return Contact{}, false
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	return c, true
}
