// Package uploads persists the outcome of finished upload jobs so the
// client can show what was sent in earlier launches. In-flight jobs live only
// in the in-memory queue (see internal/client/uploads); this package only ever
// sees terminal records.
package uploads
