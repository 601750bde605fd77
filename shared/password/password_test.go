package password_test

import (
	"roombook/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "empty", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "too short", plain: "abc123", wantErr: password.ErrTooShort},
		{name: "minimum length", plain: "abcd1234"},
		{name: "multibyte counted by rune", plain: "pässwörd"},
		{name: "too long", plain: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrTooLong},
		{name: "maximum length", plain: strings.Repeat("a", password.MaxLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Validate(tt.plain)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHash(t *testing.T) {
	hashed, err := password.Hash("frontdesk-2030")
	require.NoError(t, err)

	assert.NotEqual(t, "frontdesk-2030", hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)

	again, err := password.Hash("frontdesk-2030")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salts differ")
}

func TestHashEmpty(t *testing.T) {
	_, err := password.Hash("")

	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestHashTooLong(t *testing.T) {
	_, err := password.Hash(strings.Repeat("a", password.MaxLength+1))

	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("frontdesk-2030")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "match", plain: "frontdesk-2030", hash: hashed},
		{name: "mismatch", plain: "frontdesk-2031", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty plain", plain: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "frontdesk-2030", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	err := password.Verify("frontdesk-2030", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
