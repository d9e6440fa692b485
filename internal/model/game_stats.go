package model

import "time"

// UserGameStats holds the per-user gameplay state: board position, the
// task currently in progress, and the cumulative score. Exactly one row
// exists per user; it is created in the same transaction as the user.
type UserGameStats struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	UserID        uint      `json:"-" gorm:"uniqueIndex;not null"`
	CurrentSquare int       `json:"current_square" gorm:"default:0"`
	CurrentTask   int       `json:"current_task" gorm:"default:-1"` // -1 = no task selected
	TaskCompleted bool      `json:"task_completed" gorm:"default:false"`
	Score         int       `json:"score" gorm:"default:0"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`

	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// NewUserGameStats returns the stats row every fresh account starts with.
func NewUserGameStats(userID uint) *UserGameStats {
	return &UserGameStats{
		UserID:        userID,
		CurrentSquare: 0,
		CurrentTask:   -1,
		TaskCompleted: false,
		Score:         0,
	}
}
