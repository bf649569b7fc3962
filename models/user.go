package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	TC        bool      `json:"tc"`                // accepted terms and conditions
	IsActive  bool      `gorm:"default:true" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// PasswordResetToken is a single-use token mailed to the user. Expired and
// already-consumed tokens are rejected by the reset endpoint.
type PasswordResetToken struct {
	Token     string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
