package types

import "time"

// AccessEvent records one gate access by a registered plate.
// Rows are owned by their plate and removed together with it.
type AccessEvent struct {
	ID int `json:"id" db:"id"`

	// LicenseID references the registered plate seen at the gate.
	LicenseID int `json:"license_id" db:"license_id"`

	AccessDate  time.Time `json:"access_date" db:"access_date"`
	AccessType  string    `json:"access_type" db:"access_type"`
	ImageSource string    `json:"image_source" db:"image_source"`
}
