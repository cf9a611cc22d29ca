package domain

import "time"

// Driver is a person who can sign in and be assigned to cars.
type Driver struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"` // argon2 encoded
	LicenseNumber string    `json:"license_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Cars is only populated on detail reads.
	Cars []Car `json:"cars,omitempty"`
}

// String renders "{username} ({first_name} {last_name})".
func (d Driver) String() string {
	return d.Username + " (" + d.FirstName + " " + d.LastName + ")"
}

// DriverInput is the driver-create form.
type DriverInput struct {
	Username      string `json:"username"`
	Password1     string `json:"password1"`
	Password2     string `json:"password2"`
	LicenseNumber string `json:"license_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

// Validate applies the driver-create form rules.
func (in *DriverInput) Validate() error {
	var v ValidationError
	in.checkAccount(&v)
	if in.Username != "" && !usernamePattern.MatchString(in.Username) {
		v.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	v.Require("password1", in.Password1)
	v.Require("password2", in.Password2)
	if in.Password1 != "" && in.Password2 != "" {
		if in.Password1 != in.Password2 {
			v.Add("password2", "The two password fields didn't match.")
		} else {
			checkPassword(&v, "password2", in.Password1, in.Username)
		}
	}
	v.Require("license_number", in.LicenseNumber)
	return v.Err()
}

// ValidateAccount applies the rules shared by every way of creating an
// account: a username is required and a license, when given, must be well
// formed. Password policy and username characters are form-only.
func (in *DriverInput) ValidateAccount() error {
	var v ValidationError
	in.checkAccount(&v)
	return v.Err()
}

func (in *DriverInput) checkAccount(v *ValidationError) {
	in.Username = trim(in.Username)
	in.LicenseNumber = trim(in.LicenseNumber)
	in.FirstName = trim(in.FirstName)
	in.LastName = trim(in.LastName)

	v.Require("username", in.Username)
	v.MaxLength("username", in.Username, MaxNameLength)
	checkLicense(v, in.LicenseNumber)
	v.MaxLength("first_name", in.FirstName, MaxNameLength)
	v.MaxLength("last_name", in.LastName, MaxNameLength)
}

// LicenseInput is the single-field license update.
type LicenseInput struct {
	LicenseNumber string `json:"license_number"`
}

func (in *LicenseInput) Validate() error {
	in.LicenseNumber = trim(in.LicenseNumber)

	var v ValidationError
	v.Require("license_number", in.LicenseNumber)
	checkLicense(&v, in.LicenseNumber)
	return v.Err()
}

// ProfileInput is the first/last name edit.
type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (in *ProfileInput) Validate() error {
	in.FirstName = trim(in.FirstName)
	in.LastName = trim(in.LastName)

	var v ValidationError
	v.MaxLength("first_name", in.FirstName, MaxNameLength)
	v.MaxLength("last_name", in.LastName, MaxNameLength)
	return v.Err()
}
