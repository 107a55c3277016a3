package models

import "time"

// AppCredential identifies a client application allowed to call the API
type AppCredential struct {
	ID          int64      `json:"id" db:"id"`
	AppID       string     `json:"appId" db:"app_id"`
	AppKeyHash  string     `json:"-" db:"app_key_hash"`
	AppName     string     `json:"appName" db:"app_name"`
	Description string     `json:"description" db:"description"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastUsed    *time.Time `json:"lastUsed,omitempty" db:"last_used"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// BlacklistedToken is a revoked session token kept until it would have expired
type BlacklistedToken struct {
	Token         string    `db:"token"`
	ExpiresAt     time.Time `db:"expires_at"`
	InvalidatedAt time.Time `db:"invalidated_at"`
}
