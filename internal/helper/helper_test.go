package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIsDuplicatedCount(t *testing.T) {
	assert.False(t, IsDuplicatedCount(0))
	assert.True(t, IsDuplicatedCount(1))
	assert.True(t, IsDuplicatedCount(42))
}

func TestIsChangeConflicting(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		proposed   string
		duplicated bool
		want       bool
	}{
		{"unchanged value ignores duplicate count", "nick1", "nick1", true, false},
		{"unchanged value without duplicates", "nick1", "nick1", false, false},
		{"new value taken by someone else", "nick1", "nick2", true, true},
		{"new value that is free", "nick1", "nick2", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsChangeConflicting(tt.current, tt.proposed, tt.duplicated))
		})
	}
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hashed)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret-pass")))
}
