package records

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/mihailsb/homevault/registry"
)

var emptyObject = json.RawMessage(`{}`)

// NormalizePayload converts an arbitrary persisted payload into the current
// canonical shape for t: unknown fields are stripped, malformed JSON resets
// to the type's zero shape, and types outside the current schema collapse to
// an empty object. The result is a fixed point of the function itself.
func NormalizePayload(t registry.Type, raw json.RawMessage) json.RawMessage {
	p := zeroPayload(t)
	if p == nil {
		return emptyObject
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, p); err != nil {
			// partial fills from type errors must not leak
			p = zeroPayload(t)
		}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return emptyObject
	}
	return b
}

// Normalize coerces a persisted record into the current shape. Records are
// never dropped here: a malformed payload is reset, not discarded (documents
// behave differently, see the documents package). now supplies the default
// for missing timestamps so callers can keep the function pure.
func Normalize(rec Record, now time.Time) Record {
	rec.Title = strings.TrimSpace(rec.Title)
	rec.Payload = NormalizePayload(rec.Type, rec.Payload)

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}

	rec.Attachments = normalizeAttachments(rec.Attachments, now)
	return rec
}

// normalizeAttachments drops duplicate document references (first occurrence
// wins), defaults missing roles to OTHER and missing timestamps to now.
// References without a document id carry no information and are dropped.
func normalizeAttachments(refs []AttachmentRef, now time.Time) []AttachmentRef {
	out := make([]AttachmentRef, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		if ref.DocumentID == "" {
			continue
		}
		if _, dup := seen[ref.DocumentID]; dup {
			continue
		}
		seen[ref.DocumentID] = struct{}{}

		if !validRole(ref.Role) {
			ref.Role = RoleOther
		}
		if ref.AddedAt.IsZero() {
			ref.AddedAt = now
		}
		out = append(out, ref)
	}
	return out
}

func validRole(r Role) bool {
	switch r {
	case RoleFront, RoleBack, RoleCard, RolePage, RoleOther:
		return true
	}
	return false
}

// NormalizeList normalizes every record and sorts the result by UpdatedAt
// descending. The sort is stable so equal timestamps keep their input order.
func NormalizeList(recs []Record, now time.Time) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Normalize(rec, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
