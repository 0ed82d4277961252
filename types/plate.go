package types

import "time"

// LicensePlate is a registered plate tied to an owner name and province.
// The (LicenseNumber, ProvinceID) pair is unique.
type LicensePlate struct {
	// ID is the unique identifier of the plate record.
	ID int `json:"id" db:"id"`

	// FirstName is the owner's first name, letters only, 2-20 characters.
	FirstName string `json:"first_name" db:"first_name"`

	// LastName is the owner's last name, letters only, 2-20 characters.
	LastName string `json:"last_name" db:"last_name"`

	// LicenseNumber is the plate text, alphanumeric, 3-10 characters.
	LicenseNumber string `json:"license_number" db:"license_number"`

	// ProvinceID references the province that scopes plate uniqueness.
	ProvinceID int `json:"province_id" db:"province_id"`

	// Province is the resolved province name, populated on joined reads.
	Province string `json:"province,omitempty" db:"province"`
}

// UnknownPlate is a sighting of a plate with no matching registry entry.
type UnknownPlate struct {
	ID            int       `json:"id" db:"id"`
	AccessDate    time.Time `json:"access_date" db:"access_date"`
	LicenseNumber string    `json:"license_number" db:"license_number"`
	ImageSource   string    `json:"image_source" db:"image_source"`
}
