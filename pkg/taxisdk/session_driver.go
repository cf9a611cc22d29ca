package taxisdk

import (
	"context"
	"net/url"
)

func driverPath(id string) string { return "/drivers/" + url.PathEscape(id) + "/" }

// ListDrivers filters by username.
func (s *Session) ListDrivers(ctx context.Context, opts ListOptions) (*DriverListResponse, error) {
	var out DriverListResponse
	if err := s.get(ctx, listPath("/drivers/", "username", opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDriver returns the driver with their cars.
func (s *Session) GetDriver(ctx context.Context, id string) (*Driver, error) {
	var out DriverResponse
	if err := s.get(ctx, driverPath(id), &out); err != nil {
		return nil, err
	}
	return &out.Driver, nil
}

func (s *Session) CreateDriver(ctx context.Context, req DriverRequest) (*Driver, error) {
	var out DriverResponse
	if err := s.write(ctx, "/drivers/create/", req, &out); err != nil {
		return nil, err
	}
	return &out.Driver, nil
}

// UpdateDriverLicense changes the license number only.
func (s *Session) UpdateDriverLicense(ctx context.Context, id, licenseNumber string) (*Driver, error) {
	var out DriverResponse
	if err := s.write(ctx, driverPath(id)+"update/", LicenseRequest{LicenseNumber: licenseNumber}, &out); err != nil {
		return nil, err
	}
	return &out.Driver, nil
}

func (s *Session) UpdateDriverProfile(ctx context.Context, id string, req ProfileRequest) (*Driver, error) {
	var out DriverResponse
	if err := s.write(ctx, driverPath(id)+"profile/", req, &out); err != nil {
		return nil, err
	}
	return &out.Driver, nil
}

func (s *Session) DeleteDriver(ctx context.Context, id string) error {
	return s.write(ctx, driverPath(id)+"delete/", nil, nil)
}
