package taxisdk

import (
	"context"
	"net/url"
)

func carPath(id string) string { return "/cars/" + url.PathEscape(id) + "/" }

// ListCars filters by model.
func (s *Session) ListCars(ctx context.Context, opts ListOptions) (*CarListResponse, error) {
	var out CarListResponse
	if err := s.get(ctx, listPath("/cars/", "model", opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCar returns the car with its manufacturer and drivers.
func (s *Session) GetCar(ctx context.Context, id string) (*CarResponse, error) {
	var out CarResponse
	if err := s.get(ctx, carPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateCar(ctx context.Context, req CarRequest) (*Car, error) {
	var out CarResponse
	if err := s.write(ctx, "/cars/create/", req, &out); err != nil {
		return nil, err
	}
	return &out.Car, nil
}

// UpdateCar replaces model, manufacturer and the driver set.
func (s *Session) UpdateCar(ctx context.Context, id string, req CarRequest) (*Car, error) {
	var out CarResponse
	if err := s.write(ctx, carPath(id)+"update/", req, &out); err != nil {
		return nil, err
	}
	return &out.Car, nil
}

func (s *Session) DeleteCar(ctx context.Context, id string) error {
	return s.write(ctx, carPath(id)+"delete/", nil, nil)
}

// ToggleCarAssignment adds the signed-in driver to the car or removes them.
// It reports whether they are assigned afterwards.
func (s *Session) ToggleCarAssignment(ctx context.Context, id string) (bool, error) {
	var out AssignmentResponse
	if err := s.write(ctx, carPath(id)+"toggle-assign/", nil, &out); err != nil {
		return false, err
	}
	return out.Assigned, nil
}
