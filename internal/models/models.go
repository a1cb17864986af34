package models

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Blog struct {
	ID         int64
	UserID     int64
	Title      string
	Content    string
	Image      string // uploaded filename, empty when the blog has no image
	DatePosted time.Time
	Author     string // owning user's username, filled in by joins
}
