// Package common contains shared constants and sentinel errors used across
// the Birka client packages.
package common

// Outbound auth headers. At most one of them is attached to a request.
const (
	SessionTokenHeaderName = "X-Session-Token"
	InitDataHeaderName     = "X-Telegram-Init-Data"
)

// Metadata keys persisted in the local key/value store.
const (
	SessionTokenKey     = "birka_session_token"
	SessionUserIDKey    = "birka_user_id"
	SessionRoleKey      = "birka_role"
	SessionExpiresAtKey = "birka_expires_at"
	ActiveCompanyKey    = "birka_active_company"
)

// DefaultAPIPath is the path prefix of the REST API when no base URL override
// is configured.
const DefaultAPIPath = "/api/v1"
