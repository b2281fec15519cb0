package auth

import "time"

type RefreshToken struct {
	ID         string
	EmployeeID string
	Token      string
	ExpiryDate time.Time
	Revoked    bool
	CreatedAt  time.Time
}

func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiryDate)
}

func (t RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && !t.Expired(now)
}

// TokenPair is what login hands back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}
