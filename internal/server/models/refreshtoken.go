package models

import "time"

type RefreshToken struct {
	ID        string
	Principal string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
