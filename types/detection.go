package types

import "time"

// Detection records one camera detection batch: how many vehicles were
// seen and how many spaces were empty. Rows are append-only.
type Detection struct {
	ID int `json:"id" db:"id"`

	NoOfCars      int       `json:"no_of_cars" db:"no_of_cars"`
	NoOfEmpty     int       `json:"no_of_empty" db:"no_of_empty"`
	DetectionDate time.Time `json:"detection_date" db:"detection_date"`
	ImageSource   string    `json:"image_source" db:"image_source"`
}
