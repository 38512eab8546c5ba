// Package models defines the REST payloads exchanged with the Birka backend.
package models

// TelegramAuthRequest exchanges platform init data for a session.
type TelegramAuthRequest struct {
	InitData string `json:"init_data"`
}

// TelegramAuthResponse carries the issued session.
type TelegramAuthResponse struct {
	UserID       int64  `json:"user_id"`
	Role         string `json:"role"`
	SessionToken string `json:"session_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CurrentUser is returned by GET /auth/me.
type CurrentUser struct {
	ID               int64   `json:"id"`
	TelegramID       int64   `json:"telegram_id"`
	TelegramUsername *string `json:"telegram_username"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Role             string  `json:"role"`
}

// DisplayName prefers "First Last", then @username, then the numeric id.
func (u CurrentUser) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name != "" {
		return name
	}
	if u.TelegramUsername != nil && *u.TelegramUsername != "" {
		return "@" + *u.TelegramUsername
	}
	return "user"
}
