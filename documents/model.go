// Package documents persists references to user-supplied files (photos,
// PDFs, scans) and maintains the linkage back from documents to the records
// that reference them.
//
// A document may outlive every record that pointed at it; orphans are
// tolerated and never garbage-collected here. The authoritative side of the
// record↔document relationship is Record.Attachments — LinkedTo on a
// document is derived and only ever written by Store.RecomputeLinks.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/mihailsb/homevault/registry"
)

// OCRStatus reports the outcome of text extraction for a document.
type OCRStatus string

const (
	OCRStatusReady      OCRStatus = "READY"
	OCRStatusUnreadable OCRStatus = "UNREADABLE"
	OCRStatusFailed     OCRStatus = "FAILED"
)

// OCRResult holds extracted text and the engine that produced it.
type OCRResult struct {
	Status OCRStatus `json:"status"`
	Engine string    `json:"engine,omitempty"`
	Text   string    `json:"text,omitempty"`
}

// RecordRef identifies a record referencing this document.
type RecordRef struct {
	EntityID string        `json:"entityId"`
	RecordID string        `json:"recordId"`
	Type     registry.Type `json:"recordType,omitempty"`
}

// Document is a stored reference to an uploaded file. ID and URI are its
// identity fields; ContentHash, when present, drives deduplication.
type Document struct {
	ID          string      `json:"id"`
	URI         string      `json:"uri"`
	MimeType    string      `json:"mimeType,omitempty"`
	FileName    string      `json:"fileName,omitempty"`
	SizeBytes   int64       `json:"sizeBytes,omitempty"`
	ContentHash string      `json:"contentHash,omitempty"`
	Title       string      `json:"title,omitempty"`
	Note        string      `json:"note,omitempty"`
	Tags        []string    `json:"tags"`
	OCR         *OCRResult  `json:"ocr,omitempty"`
	LinkedTo    []RecordRef `json:"linkedTo"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// New returns a document for an uploaded file with a fresh id.
func New(uri, fileName, mimeType string) Document {
	return Document{
		ID:        uuid.NewString(),
		URI:       uri,
		FileName:  fileName,
		MimeType:  mimeType,
		Tags:      []string{},
		LinkedTo:  []RecordRef{},
		CreatedAt: time.Now().UTC(),
	}
}

// dedupKey is the duplicate identity: content hash (empty when unknown)
// paired with the storage locator.
func (d Document) dedupKey() string {
	return d.ContentHash + "\x00" + d.URI
}
