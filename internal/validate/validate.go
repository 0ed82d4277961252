// Package validate holds the record format checks applied before any
// database access. Each check is a single anchored regexp with a fixed
// human-readable message; the first failing rule wins.
package validate

import (
	"errors"
	"regexp"
)

var (
	usernameRE = regexp.MustCompile(`^[a-zA-Z0-9]{5,20}$`)
	// Person names and license numbers also accept Thai script.
	nameRE          = regexp.MustCompile(`^[ก-๙a-zA-Z]{2,20}$`)
	licenseNumberRE = regexp.MustCompile(`^[ก-๙a-zA-Z0-9]{3,10}$`)

	passwordLowerRE  = regexp.MustCompile(`[a-z]`)
	passwordUpperRE  = regexp.MustCompile(`[A-Z]`)
	passwordDigitRE  = regexp.MustCompile(`[0-9]`)
	passwordSymbolRE = regexp.MustCompile(`[!@#$%^&*()\-_=+\[\]{};:,.?]`)
)

var (
	ErrUsername = errors.New("Username must be alphanumeric and between 5-20 characters long with no spaces.")
	ErrPassword = errors.New("Password must be 8-30 characters long and contain at least one lowercase letter, one uppercase letter, one number and one symbol.")

	ErrFirstName = errors.New("First Name must be alphanumeric and between 2-20 characters long with no spaces.")
	ErrLastName  = errors.New("Last Name must be alphanumeric and between 2-20 characters long with no spaces.")

	ErrLicenseNumber = errors.New("License Number must be alphanumeric and between 3-10 characters long with no spaces.")
)

func Username(username string) error {
	if !usernameRE.MatchString(username) {
		return ErrUsername
	}
	return nil
}

func Password(password string) error {
	if len(password) < 8 || len(password) > 30 {
		return ErrPassword
	}
	if !passwordLowerRE.MatchString(password) ||
		!passwordUpperRE.MatchString(password) ||
		!passwordDigitRE.MatchString(password) ||
		!passwordSymbolRE.MatchString(password) {
		return ErrPassword
	}
	return nil
}

func FirstName(name string) error {
	if !nameRE.MatchString(name) {
		return ErrFirstName
	}
	return nil
}

func LastName(name string) error {
	if !nameRE.MatchString(name) {
		return ErrLastName
	}
	return nil
}

func LicenseNumber(number string) error {
	if !licenseNumberRE.MatchString(number) {
		return ErrLicenseNumber
	}
	return nil
}

// PlateRecord applies the plate field checks in declaration order and
// returns the first violation.
func PlateRecord(firstName, lastName, licenseNumber string) error {
	if err := FirstName(firstName); err != nil {
		return err
	}
	if err := LastName(lastName); err != nil {
		return err
	}
	return LicenseNumber(licenseNumber)
}
