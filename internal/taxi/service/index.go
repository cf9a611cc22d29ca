package service

import (
	"context"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
)

// Stats are the collection sizes shown on the home page.
type Stats struct {
	NumDrivers       int `json:"num_drivers"`
	NumCars          int `json:"num_cars"`
	NumManufacturers int `json:"num_manufacturers"`
}

type IndexService struct {
	Store store.Store
}

func (s *IndexService) Stats(ctx context.Context, caller *domain.CallerIdentity) (Stats, error) {
	if err := requireCaller(caller); err != nil {
		return Stats{}, err
	}

	var (
		st  Stats
		err error
	)
	if st.NumDrivers, err = s.Store.Drivers().CountDrivers(ctx); err != nil {
		return Stats{}, err
	}
	if st.NumCars, err = s.Store.Cars().CountCars(ctx); err != nil {
		return Stats{}, err
	}
	if st.NumManufacturers, err = s.Store.Manufacturers().CountManufacturers(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}
