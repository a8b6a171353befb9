package model

import "time"

// RefreshToken persists the long-lived token per (user, role) so a
// stolen-but-rotated token can be invalidated on logout. Upserted on
// every login.
type RefreshToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:unique_refresh_user_type"`
	UserType  string    `json:"user_type" gorm:"not null;uniqueIndex:unique_refresh_user_type"`
	Token     string    `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
