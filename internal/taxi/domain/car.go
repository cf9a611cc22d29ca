package domain

import (
	"slices"
	"time"
)

type Car struct {
	ID             string    `json:"id"`
	Model          string    `json:"model"`
	ManufacturerID string    `json:"manufacturer_id"`
	DriverIDs      []string  `json:"driver_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Resolved relations, filled in by reads.
	Manufacturer *Manufacturer `json:"manufacturer,omitempty"`
	Drivers      []Driver      `json:"drivers,omitempty"`
}

func (c Car) String() string { return c.Model }

// HasDriver reports whether driverID is in the car's driver set.
func (c Car) HasDriver(driverID string) bool {
	return slices.Contains(c.DriverIDs, driverID)
}

// CarInput is the editable field set of a car. DriverIDs replaces the whole
// driver set on update.
type CarInput struct {
	Model          string   `json:"model"`
	ManufacturerID string   `json:"manufacturer"`
	DriverIDs      []string `json:"drivers"`
}

// Validate trims the input, removes duplicate driver ids and checks required
// fields. References are checked against the store by the service.
func (in *CarInput) Validate() error {
	in.Model = trim(in.Model)
	in.ManufacturerID = trim(in.ManufacturerID)
	in.DriverIDs = NormalizeIDs(in.DriverIDs)

	var v ValidationError
	v.Require("model", in.Model)
	v.MaxLength("model", in.Model, MaxNameLength)
	v.Require("manufacturer", in.ManufacturerID)
	return v.Err()
}

// NormalizeIDs trims, drops blanks and dedupes ids, keeping first-seen order.
func NormalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = trim(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
