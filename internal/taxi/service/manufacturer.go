package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

type ManufacturerService struct {
	Store store.Store
}

// List returns manufacturers whose name contains opts.Search.
func (s *ManufacturerService) List(ctx context.Context, caller *domain.CallerIdentity, opts store.ListOptions) (store.Page[domain.Manufacturer], error) {
	if err := requireCaller(caller); err != nil {
		return store.Page[domain.Manufacturer]{}, err
	}
	return s.Store.Manufacturers().ListManufacturers(ctx, opts)
}

func (s *ManufacturerService) Get(ctx context.Context, caller *domain.CallerIdentity, id string) (domain.Manufacturer, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Manufacturer{}, err
	}
	m, err := s.Store.Manufacturers().GetManufacturerByID(ctx, id)
	return m, mapNotFound(err)
}

func (s *ManufacturerService) Create(ctx context.Context, caller *domain.CallerIdentity, in domain.ManufacturerInput) (domain.Manufacturer, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Manufacturer{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Manufacturer{}, err
	}

	l := slogx.FromContext(ctx)
	m := domain.Manufacturer{ID: idx.New().String(), Name: in.Name, Country: in.Country}
	if err := s.Store.Manufacturers().CreateManufacturer(ctx, m); err != nil {
		l.Error("failed to create manufacturer", "error", err)
		return domain.Manufacturer{}, err
	}

	l.Info("manufacturer created", "manufacturer_id", m.ID, "name", m.Name)
	return s.Store.Manufacturers().GetManufacturerByID(ctx, m.ID)
}

func (s *ManufacturerService) Update(ctx context.Context, caller *domain.CallerIdentity, id string, in domain.ManufacturerInput) (domain.Manufacturer, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Manufacturer{}, err
	}
	if _, err := s.Store.Manufacturers().GetManufacturerByID(ctx, id); err != nil {
		return domain.Manufacturer{}, mapNotFound(err)
	}
	if err := in.Validate(); err != nil {
		return domain.Manufacturer{}, err
	}

	l := slogx.FromContext(ctx)
	err := s.Store.Manufacturers().UpdateManufacturer(ctx, domain.Manufacturer{ID: id, Name: in.Name, Country: in.Country})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Error("failed to update manufacturer", "error", err, "manufacturer_id", id)
		}
		return domain.Manufacturer{}, mapNotFound(err)
	}

	l.Info("manufacturer updated", "manufacturer_id", id)
	return s.Store.Manufacturers().GetManufacturerByID(ctx, id)
}

// Delete removes the manufacturer together with its cars.
func (s *ManufacturerService) Delete(ctx context.Context, caller *domain.CallerIdentity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	l := slogx.FromContext(ctx)
	if err := s.Store.Manufacturers().DeleteManufacturer(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Error("failed to delete manufacturer", "error", err, "manufacturer_id", id)
		}
		return mapNotFound(err)
	}

	l.Info("manufacturer deleted", "manufacturer_id", id)
	return nil
}
