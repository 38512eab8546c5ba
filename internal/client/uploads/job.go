// Package uploads runs file uploads in the background and tracks their
// progress so any screen can show them.
//
// A job is created synchronously by StartDocumentUpload or
// StartTemplateUpload and then moves from "uploading" to exactly one of
// "done" or "error". Terminal jobs never change again.
package uploads

import "time"

type Kind string

const (
	KindDocument Kind = "document"
	KindTemplate Kind = "template"
)

type Status string

const (
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

// Job is a snapshot of one upload.
type Job struct {
	ID       string
	Kind     Kind
	FileName string
	// Progress is 0..100.
	Progress int
	Status   Status
	// Error is set for StatusError.
	Error string

	// Template uploads only.
	Name      string
	IsDefault bool

	// Document uploads only, filled from the server response.
	SourceFile  string
	ChunksAdded int

	CreatedAt time.Time
	seq       uint64
}

func (j Job) Terminal() bool {
	return j.Status == StatusDone || j.Status == StatusError
}
