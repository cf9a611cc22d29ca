package taxisdk

import (
	"context"
	"net/url"
)

func manufacturerPath(id string) string { return "/manufacturers/" + url.PathEscape(id) + "/" }

// ListManufacturers filters by name.
func (s *Session) ListManufacturers(ctx context.Context, opts ListOptions) (*ManufacturerListResponse, error) {
	var out ManufacturerListResponse
	if err := s.get(ctx, listPath("/manufacturers/", "name", opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetManufacturer(ctx context.Context, id string) (*Manufacturer, error) {
	var out ManufacturerResponse
	if err := s.get(ctx, manufacturerPath(id), &out); err != nil {
		return nil, err
	}
	return &out.Manufacturer, nil
}

func (s *Session) CreateManufacturer(ctx context.Context, req ManufacturerRequest) (*Manufacturer, error) {
	var out ManufacturerResponse
	if err := s.write(ctx, "/manufacturers/create/", req, &out); err != nil {
		return nil, err
	}
	return &out.Manufacturer, nil
}

func (s *Session) UpdateManufacturer(ctx context.Context, id string, req ManufacturerRequest) (*Manufacturer, error) {
	var out ManufacturerResponse
	if err := s.write(ctx, manufacturerPath(id)+"update/", req, &out); err != nil {
		return nil, err
	}
	return &out.Manufacturer, nil
}

// DeleteManufacturer also deletes every car the manufacturer makes.
func (s *Session) DeleteManufacturer(ctx context.Context, id string) error {
	return s.write(ctx, manufacturerPath(id)+"delete/", nil, nil)
}
