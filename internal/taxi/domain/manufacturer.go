package domain

import "time"

type Manufacturer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders "{name} {country}". An unset country still leaves the
// separating space.
func (m Manufacturer) String() string {
	return m.Name + " " + m.Country
}

// ManufacturerInput is the editable field set of a manufacturer.
type ManufacturerInput struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Validate trims the input in place and reports missing or oversized fields.
func (in *ManufacturerInput) Validate() error {
	in.Name = trim(in.Name)
	in.Country = trim(in.Country)

	var v ValidationError
	v.Require("name", in.Name)
	v.MaxLength("name", in.Name, MaxNameLength)
	v.MaxLength("country", in.Country, MaxNameLength)
	return v.Err()
}
