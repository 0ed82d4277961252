package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	valid := []string{"admin", "test01", "User123", "abcde", "a1234567890123456789"}
	for _, username := range valid {
		assert.NoError(t, Username(username), username)
	}

	invalid := []string{"", "abcd", "user name", "user-name", "ユーザー", "a123456789012345678901"}
	for _, username := range invalid {
		assert.ErrorIs(t, Username(username), ErrUsername, username)
	}
}

func TestPassword(t *testing.T) {
	valid := []string{"Passw0rd!", "Abcdef1#", "xYz12345?", "Str0ng-password"}
	for _, password := range valid {
		assert.NoError(t, Password(password), password)
	}

	invalid := []string{
		"",
		"Ab1!",                             // too short
		"alllowercase1!",                   // no uppercase
		"ALLUPPERCASE1!",                   // no lowercase
		"NoDigitsHere!",                    // no digit
		"NoSymbols123",                     // no symbol
		"Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!", // too long
	}
	for _, password := range invalid {
		assert.ErrorIs(t, Password(password), ErrPassword, password)
	}
}

func TestNames(t *testing.T) {
	assert.NoError(t, FirstName("John"))
	assert.NoError(t, FirstName("สมชาย"))
	assert.NoError(t, LastName("Doe"))

	assert.ErrorIs(t, FirstName("J"), ErrFirstName)
	assert.ErrorIs(t, FirstName("John Doe"), ErrFirstName)
	assert.ErrorIs(t, FirstName("John3"), ErrFirstName)
	assert.ErrorIs(t, LastName(""), ErrLastName)
}

func TestLicenseNumber(t *testing.T) {
	assert.NoError(t, LicenseNumber("ABC123"))
	assert.NoError(t, LicenseNumber("กข1234"))
	assert.NoError(t, LicenseNumber("1กม"))

	assert.ErrorIs(t, LicenseNumber("AB"), ErrLicenseNumber)
	assert.ErrorIs(t, LicenseNumber("ABC 123"), ErrLicenseNumber)
	assert.ErrorIs(t, LicenseNumber("ABCDEF12345"), ErrLicenseNumber)
}

func TestPlateRecordFirstFailureWins(t *testing.T) {
	// Both the name and the number are bad; the first rule reports.
	err := PlateRecord("J", "D", "!")
	assert.ErrorIs(t, err, ErrFirstName)

	err = PlateRecord("John", "D", "!")
	assert.ErrorIs(t, err, ErrLastName)

	err = PlateRecord("John", "Doe", "!")
	assert.ErrorIs(t, err, ErrLicenseNumber)
}
