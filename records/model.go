// Package records implements the entity record store: typed units of
// information (identity documents, medical data, pet data, notes) persisted
// per owning entity and normalized to the current schema shape on every read
// and write.
package records

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mihailsb/homevault/registry"
)

// Role classifies what an attached document shows.
type Role string

const (
	RoleFront Role = "FRONT"
	RoleBack  Role = "BACK"
	RoleCard  Role = "CARD"
	RolePage  Role = "PAGE"
	RoleOther Role = "OTHER"
)

// AttachmentRef points from a record to a stored document. References are
// unique by DocumentID within one record.
type AttachmentRef struct {
	DocumentID string    `json:"documentId"`
	Role       Role      `json:"role,omitempty"`
	Label      string    `json:"label,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Record is one typed unit of information attached to exactly one entity.
// Payload carries the type-specific data as raw JSON; DecodePayload converts
// it to the typed variant for the record's Type.
type Record struct {
	ID          string          `json:"id"`
	EntityID    string          `json:"entityId"`
	Type        registry.Type   `json:"recordType"`
	Title       string          `json:"title,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Attachments []AttachmentRef `json:"attachments"`
	Private     bool            `json:"isPrivate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// New returns an empty record of the given type for entityID with a fresh id
// and the registry's privacy default applied.
func New(entityID string, t registry.Type) Record {
	now := time.Now().UTC()
	rec := Record{
		ID:          uuid.NewString(),
		EntityID:    entityID,
		Type:        t,
		Attachments: []AttachmentRef{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if e, ok := registry.Get(t); ok {
		rec.Private = e.Private
	}
	return rec
}

// WithPayload returns a copy of rec carrying p as its payload. The payload's
// type must match rec.Type; a mismatch is reported so callers cannot persist
// a record whose tag and variant disagree.
func (r Record) WithPayload(p TypedPayload) (Record, error) {
	if p.RecordType() != r.Type {
		return r, ErrPayloadTypeMismatch
	}
	b, err := json.Marshal(p)
	if err != nil {
		return r, err
	}
	r.Payload = b
	return r, nil
}

// HasAttachment reports whether docID is referenced by this record.
func (r Record) HasAttachment(docID string) bool {
	for _, a := range r.Attachments {
		if a.DocumentID == docID {
			return true
		}
	}
	return false
}
