// Package client contains the transport building blocks of the Birka client.
//
// # Overview
//
// The package provides:
//  1. The Client contract used by the service layer: JSON requests (Do),
//     binary downloads (File) and multipart uploads with progress
//     (UploadForm).
//  2. HTTPClient, the REST implementation. It attaches auth headers from a
//     session.Provider, hands 401 responses to a session.UnauthorizedHandler
//     and retries transient gateway failures via a shared RetryPolicy.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError whose message is the server's
// "detail" field or "API error: {status}". Callers match conditions with
// errors.Is: ErrUnauthorized (401), ErrUnavailable (502/503/504 after the
// retry budget), ErrNetwork, ErrAborted, ErrInvalidJSON.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context; cancelling it aborts in-flight requests and pending
// retry waits.
package client
