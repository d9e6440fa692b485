package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResetTokenTTL is how long a password reset token stays usable.
const ResetTokenTTL = time.Hour

// PasswordResetToken is a single-use credential that authorizes one
// password change without the old password. Rows are deleted on use;
// expired unused rows are rejected at consumption time.
type PasswordResetToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"index;not null"`
	Token     string    `json:"token" gorm:"type:char(36);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a random token value before inserting the row.
func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.Token == "" {
		t.Token = uuid.New().String()
	}
	return nil
}

// IsValid reports whether the token is still inside its validity window.
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return now.Sub(t.CreatedAt) < ResetTokenTTL
}
