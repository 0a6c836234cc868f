package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTurn(t *testing.T) {
	turn := NewTurn(RoleUser, "hello")
	assert.NotEmpty(t, turn.ID)
	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "hello", turn.Text)
	assert.False(t, turn.Timestamp.IsZero())

	other := NewAssistantTurn("hi there")
	assert.Equal(t, RoleAssistant, other.Role)
	assert.NotEqual(t, turn.ID, other.ID)
}
