package user

import "time"

type User struct {
	ID           int64
	Phone        string
	Email        string
	Username     string
	PasswordHash string
	IsAdmin      bool
	LastLogin    time.Time
	CreatedAt    time.Time
}
