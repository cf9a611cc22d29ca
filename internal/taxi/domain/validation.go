package domain

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxNameLength     = 255
	MinPasswordLength = 8
	LicenseLength     = 8
)

var (
	licensePattern  = regexp.MustCompile(`^[A-Z]{3}[0-9]{5}$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// ValidationError collects per-field messages. The zero value is empty and
// ready to use.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg against field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Require(field, value string) {
	if value == "" {
		e.Add(field, "This field is required.")
	}
}

func (e *ValidationError) MaxLength(field, value string, n int) {
	if c := utf8.RuneCountInString(value); c > n {
		e.Add(field, fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", n, c))
	}
}

// Empty reports whether no field errors were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err returns e as an error, or nil when nothing was recorded.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// NewFieldError builds a single-field validation error.
func NewFieldError(field, msg string) *ValidationError {
	var v ValidationError
	v.Add(field, msg)
	return &v
}

// ValidLicenseNumber reports whether s is three uppercase letters followed
// by five digits.
func ValidLicenseNumber(s string) bool {
	return licensePattern.MatchString(s)
}

func checkLicense(v *ValidationError, license string) {
	if license == "" {
		return
	}
	if utf8.RuneCountInString(license) != LicenseLength {
		v.Add("license_number", fmt.Sprintf("License number should consist of %d characters.", LicenseLength))
		return
	}
	if !licensePattern.MatchString(license) {
		v.Add("license_number", "License number should start with 3 uppercase letters followed by 5 digits.")
	}
}

func checkPassword(v *ValidationError, field, password, username string) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		v.Add(field, fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		v.Add(field, "This password is entirely numeric.")
	}
	if username != "" && strings.EqualFold(password, username) {
		v.Add(field, "The password is too similar to the username.")
	}
}

func trim(s string) string { return strings.TrimSpace(s) }
