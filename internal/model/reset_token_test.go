package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetToken_IsValid(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := PasswordResetToken{CreatedAt: created}

	tests := []struct {
		name  string
		now   time.Time
		valid bool
	}{
		{"just created", created, true},
		{"59 minutes later", created.Add(59 * time.Minute), true},
		{"exactly one hour", created.Add(time.Hour), false},
		{"61 minutes later", created.Add(61 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, token.IsValid(tt.now))
		})
	}
}

func TestTask_AppliesTo(t *testing.T) {
	task := Task{ApplicableSquares: []int{1, 4, 9}}

	assert.True(t, task.AppliesTo(4))
	assert.False(t, task.AppliesTo(2))

	// Empty list means the task is assigned to no square.
	unassigned := Task{}
	assert.False(t, unassigned.AppliesTo(0))
}

func TestNewUserGameStats_Defaults(t *testing.T) {
	stats := NewUserGameStats(3)

	assert.Equal(t, uint(3), stats.UserID)
	assert.Equal(t, 0, stats.CurrentSquare)
	assert.Equal(t, -1, stats.CurrentTask)
	assert.False(t, stats.TaskCompleted)
	assert.Equal(t, 0, stats.Score)
}
