package client

import (
	"context"
)

// Client is the REST contract consumed by services.
type Client interface {
	// Do sends body as JSON and decodes a successful response into out
	// (nil out discards it). Retryable gateway statuses are retried.
	Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error

	// File performs a single request and returns the raw response body.
	File(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Blob, error)

	// UploadForm posts a multipart form, reporting progress in percent.
	UploadForm(ctx context.Context, path string, form *Form, onProgress func(percent int), out any) error
}

// Blob is a downloaded file.
type Blob struct {
	Data        []byte
	ContentType string
	// Filename comes from Content-Disposition; empty when absent.
	Filename string
}
