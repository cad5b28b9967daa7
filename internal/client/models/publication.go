// Package models defines the publication record and its wire format.
package models

import (
	"fmt"
	"time"
)

// Status is a publication's lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ParseStatus validates a raw status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Publication is one record as the backend serves it. The JSON tags reproduce
// the backend wire format exactly and must not change: `_id` is the
// server-assigned identifier, `user` the opaque owner reference, `__v` an
// opaque revision counter. All three are echoed back untouched.
type Publication struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Revision  int       `json:"__v"`
}

// Draft is the client-sent subset of a publication: the body of create and
// update requests. Identifier, owner and timestamps are server-assigned.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

// DraftOf extracts the editable fields of an existing record, e.g. to
// re-submit it with one field changed or to re-create it after deletion.
func DraftOf(p Publication) Draft {
	return Draft{
		Title:   p.Title,
		Content: p.Content,
		Status:  p.Status,
	}
}
