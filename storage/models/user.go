package models

import "time"

type User struct {
	ID          string
	Handle      string
	DisplayName string
	AvatarUrl   string
	Activated   bool
	CreatedAt   time.Time
}
