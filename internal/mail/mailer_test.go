package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetLink(t *testing.T) {
	link := ResetLink("http://localhost:5173", 7, "abc-123")
	assert.Equal(t, "http://localhost:5173/forgot-password?user_id=7&token=abc-123", link)
}
