package sessions

import "time"

// Session is a refresh session stored in Redis for the lifetime of its token.
type Session struct {
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"userId"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
