package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placementportal/internal/domain"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(4)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Regexp(t, hexRe, salt)
		seen[salt] = struct{}{}
	}
	assert.Len(t, seen, 5, "salts should not repeat")
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	tests := []struct {
		name     string
		salt     string
		password string
		wantErr  bool
	}{
		{name: "matching password", salt: salt, password: "correct horse", wantErr: false},
		{name: "wrong password", salt: salt, password: "battery staple", wantErr: true},
		{name: "wrong salt", salt: strings.Repeat("0", 64), password: "correct horse", wantErr: true},
	}

	hash, err := h.Hash(salt, "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Compare(hash, tt.salt, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	h := NewBcryptHasher(4)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	long := strings.Repeat("p", 200)

	hash, err := h.Hash(salt, long)
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, salt, long))
	assert.Error(t, h.Compare(hash, salt, long[:199]))
}
