// Package cli provides the interactive Birka terminal client.
//
// It wires configuration, local storage, the REST client, the upload queue
// and the scanning flows into a read-eval-print loop. Typical flow: bootstrap
// the session from host init data, then execute user commands.
//
// Key features:
//   - Session bootstrap / current user / logout
//   - Orders and order lines of the active company
//   - Receiving with piece-by-piece barcode counting
//   - Free-standing scanner with server validation
//   - Background document and contract template uploads
//   - File exports delivered through the download chain
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
