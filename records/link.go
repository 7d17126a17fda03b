package records

import "time"

// LinkDocument returns a copy of rec with a reference to docID appended.
// Linking an already-linked document is a no-op, not a duplicate insert.
// The input record is never mutated; the caller persists the returned value
// via Store.Upsert.
func LinkDocument(rec Record, docID string, role Role, label string) Record {
	if docID == "" || rec.HasAttachment(docID) {
		return rec
	}
	if !validRole(role) {
		role = RoleOther
	}

	attachments := make([]AttachmentRef, len(rec.Attachments), len(rec.Attachments)+1)
	copy(attachments, rec.Attachments)

	rec.Attachments = append(attachments, AttachmentRef{
		DocumentID: docID,
		Role:       role,
		Label:      label,
		AddedAt:    time.Now().UTC(),
	})
	return rec
}

// UnlinkDocument returns a copy of rec without the reference to docID.
// Unlinking a document that is not linked is a no-op.
func UnlinkDocument(rec Record, docID string) Record {
	if !rec.HasAttachment(docID) {
		return rec
	}

	attachments := make([]AttachmentRef, 0, len(rec.Attachments)-1)
	for _, a := range rec.Attachments {
		if a.DocumentID != docID {
			attachments = append(attachments, a)
		}
	}
	rec.Attachments = attachments
	return rec
}
