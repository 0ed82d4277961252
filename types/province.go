package types

// Province is a fixed reference entity used to scope plate uniqueness.
// The table is seeded once and read-only afterward.
type Province struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"province" db:"province"`
}
