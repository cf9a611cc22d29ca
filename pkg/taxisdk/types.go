package taxisdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	// Error is a machine-readable code, see the ErrorCode constants.
	Error string `json:"error"`

	// ErrorDescription is a human-readable message.
	ErrorDescription string `json:"error_description,omitempty"`

	// Fields maps form fields to their validation messages.
	Fields map[string][]string `json:"fields,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenRequest is the body of POST /api/v1/token and the login form.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned from POST /api/v1/token.
type TokenResponse struct {
	// AccessToken is sent back as "Authorization: Bearer <token>".
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
}

// ============================================================================
// Records
// ============================================================================

type Manufacturer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Driver struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	LicenseNumber string    `json:"license_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Cars is only present on detail reads.
	Cars []Car `json:"cars,omitempty"`
}

type Car struct {
	ID             string        `json:"id"`
	Model          string        `json:"model"`
	ManufacturerID string        `json:"manufacturer_id"`
	DriverIDs      []string      `json:"driver_ids"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty"`
	Drivers        []Driver      `json:"drivers,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ============================================================================
// Requests
// ============================================================================

type ManufacturerRequest struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// CarRequest replaces the whole driver set on update.
type CarRequest struct {
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
	Drivers      []string `json:"drivers"`
}

type DriverRequest struct {
	Username      string `json:"username"`
	Password1     string `json:"password1"`
	Password2     string `json:"password2"`
	LicenseNumber string `json:"license_number"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
}

type LicenseRequest struct {
	LicenseNumber string `json:"license_number"`
}

type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ListOptions narrows a list call. Search is matched case-insensitively
// against the collection's search field.
type ListOptions struct {
	Search string
	Page   int
}

// ============================================================================
// Responses
// ============================================================================

// PageInfo is the pagination state of a list response.
type PageInfo struct {
	Number   int  `json:"number"`
	NumPages int  `json:"num_pages"`
	Total    int  `json:"total"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_previous"`
	Next     int  `json:"next_page_number,omitempty"`
	Prev     int  `json:"previous_page_number,omitempty"`
}

type ManufacturerListResponse struct {
	Manufacturers []Manufacturer `json:"manufacturer_list"`
	Search        string         `json:"search"`
	Page          PageInfo       `json:"page_obj"`
}

type CarListResponse struct {
	Cars   []Car    `json:"car_list"`
	Search string   `json:"search"`
	Page   PageInfo `json:"page_obj"`
}

type DriverListResponse struct {
	Drivers []Driver `json:"driver_list"`
	Search  string   `json:"search"`
	Page    PageInfo `json:"page_obj"`
}

type ManufacturerResponse struct {
	Manufacturer Manufacturer `json:"manufacturer"`
}

type CarResponse struct {
	Car Car `json:"car"`

	// IsAssigned reports whether the caller drives this car. Detail reads only.
	IsAssigned bool `json:"is_assigned,omitempty"`
}

type DriverResponse struct {
	Driver Driver `json:"driver"`
}

type AssignmentResponse struct {
	Assigned bool `json:"assigned"`
}

// StatsResponse is the home page summary.
type StatsResponse struct {
	NumDrivers       int `json:"num_drivers"`
	NumCars          int `json:"num_cars"`
	NumManufacturers int `json:"num_manufacturers"`
}

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the status of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
