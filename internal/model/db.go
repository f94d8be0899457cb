package model

import "time"

// Local persistence models. This client owns no catalog, cart or order
// state; the only rows it keeps are the session and UI preferences that a
// browser would hold in session/local storage.

type Session struct {
	UserID      string `gorm:"primaryKey;size:64;not null"`
	Email       string `gorm:"size:128"`
	Username    string `gorm:"size:64"`
	DisplayName string `gorm:"size:128"`
	Roles       string `gorm:"size:256"` // comma-separated
	Token       string `gorm:"size:4096;not null"`
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Preference struct {
	UserID    string `gorm:"primaryKey;size:64;not null"`
	Name      string `gorm:"primaryKey;size:32;not null"` // e.g. "theme"
	Value     string `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
