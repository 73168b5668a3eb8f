package auth

import (
	"testing"

	domainerrors "diner/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "StrongPass987!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPass987!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_HashRejectsWeakPasswords(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	weakPasswords := []string{
		"123",          // Too short
		"password123!", // Forbidden word, no uppercase
		"UPPERCASE9!",  // No lowercase
		"lowercase9!",  // No uppercase
		"NoNumbersHere!",
		"NoSpecials99",
	}

	for _, weak := range weakPasswords {
		_, err := hasher.Hash(weak)
		assert.Error(t, err, "expected error for weak password %q", weak)
	}
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher()

	valid := []string{
		"StrongPhrase123!",
		"MySecure@Word1",
		"Complex#Secret9",
		"Valid$Phrase2024",
		"Pässphräse123!", // Unicode is fine.
	}
	for _, password := range valid {
		assert.NoError(t, hasher.ValidatePasswordStrength(password), "expected %q to pass", password)
	}

	cases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "must be at least 8 characters long"},
		{"UPPERCASE123!", "must contain at least one lowercase letter"},
		{"lowercase123!", "must contain at least one uppercase letter"},
		{"NoNumbersHere!", "must contain at least one number"},
		{"NoSpecials123", "must contain at least one special character"},
		{"MyPassword123!", "contains forbidden words"},
		{"SiteAdmin123!", "contains forbidden words"},
	}
	for _, tc := range cases {
		err := hasher.ValidatePasswordStrength(tc.password)
		require.Error(t, err, "expected error for %q", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr)
	}
}

func TestBcryptHasher_ForbiddenWordError(t *testing.T) {
	hasher := NewBcryptHasher()

	err := hasher.ValidatePasswordStrength("MyPassword123!")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordForbiddenWords))

	err = hasher.ValidatePasswordStrength("short")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	hash, err := hasher.Hash("StrongPhrase123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_WithCustomCost_OutOfRangeFallsBack(t *testing.T) {
	hasher := NewBcryptHasherWithCost(99)

	hash, err := hasher.Hash("StrongPhrase123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_StrengthHelpers(t *testing.T) {
	hasher := &bcryptHasher{}

	assert.True(t, hasher.hasUppercase("Phrase"))
	assert.False(t, hasher.hasUppercase("phrase"))

	assert.True(t, hasher.hasLowercase("Phrase"))
	assert.False(t, hasher.hasLowercase("PHRASE"))

	assert.True(t, hasher.hasNumbers("Phrase123"))
	assert.False(t, hasher.hasNumbers("Phrase"))

	assert.True(t, hasher.hasSpecialChars("Phrase!"))
	assert.False(t, hasher.hasSpecialChars("Phrase"))

	words := []string{"password", "admin"}
	assert.True(t, hasher.containsForbiddenWords("MyPassword123", words))
	assert.True(t, hasher.containsForbiddenWords("AdminUser", words))
	assert.False(t, hasher.containsForbiddenWords("SecurePhrase123", words))
}
