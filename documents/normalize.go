package documents

import (
	"sort"
	"time"
)

// Normalize coerces a persisted document into the current shape. Unlike
// records, documents missing their identity fields are dropped (ok=false)
// rather than defaulted: a reference without an id or storage locator cannot
// be repaired.
func Normalize(doc Document, now time.Time) (Document, bool) {
	if doc.ID == "" || doc.URI == "" {
		return Document{}, false
	}

	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.LinkedTo == nil {
		doc.LinkedTo = []RecordRef{}
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.OCR != nil && !validOCRStatus(doc.OCR.Status) {
		doc.OCR.Status = OCRStatusFailed
	}
	return doc, true
}

func validOCRStatus(s OCRStatus) bool {
	switch s {
	case OCRStatusReady, OCRStatusUnreadable, OCRStatusFailed:
		return true
	}
	return false
}

// NormalizeList normalizes every item, drops invalid ones, removes
// duplicates by (contentHash, uri) keeping the first occurrence in input
// order, and sorts the survivors by CreatedAt descending. Normalizing an
// already-normalized list is a fixed point.
func NormalizeList(docs []Document, now time.Time) []Document {
	out := make([]Document, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		norm, ok := Normalize(doc, now)
		if !ok {
			continue
		}
		key := norm.dedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, norm)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
