package cabins

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"oasis/booking"
	"oasis/db"
	"oasis/models"
	"oasis/rdx"
)

const cabinViewTTL = time.Hour

// Detail is everything the cabin page needs to render its reservation form.
type Detail struct {
	Cabin       models.Cabin     `json:"cabin"`
	Settings    *models.Settings `json:"settings"`
	BookedDates []string         `json:"bookedDates"`
}

// Catalogue serves the public cabin pages. Views is optional.
type Catalogue struct {
	Store    db.Store
	Resolver *booking.Resolver
	Views    rdx.Cache
}

func NewCatalogue(store db.Store, resolver *booking.Resolver, views rdx.Cache) *Catalogue {
	return &Catalogue{Store: store, Resolver: resolver, Views: views}
}

// List returns the cabins in the capacity bucket, ordered by name.
func (c *Catalogue) List(ctx context.Context, filter models.CapacityFilter) ([]models.Cabin, error) {
	all, err := c.Store.Cabins(ctx)
	if err != nil {
		return nil, fmt.Errorf("cabins %w: %w", models.ErrLoadFailed, err)
	}
	out := make([]models.Cabin, 0, len(all))
	for _, cabin := range all {
		if filter.Match(cabin) {
			out = append(out, cabin)
		}
	}
	return out, nil
}

// Detail loads a cabin with the settings and the days already booked.
func (c *Catalogue) Detail(ctx context.Context, cabinID string) (Detail, error) {
	key := rdx.CabinView(cabinID)
	var d Detail
	if c.Views != nil {
		if hit, err := c.Views.Get(ctx, key, &d); err == nil && hit {
			return d, nil
		}
	}

	cabin, err := c.Store.Cabin(ctx, cabinID)
	if errors.Is(err, models.ErrNotFound) {
		return Detail{}, fmt.Errorf("cabin %w", models.ErrNotFound)
	}
	if err != nil {
		return Detail{}, fmt.Errorf("cabin %w: %w", models.ErrLoadFailed, err)
	}
	d.Cabin = cabin

	settings, err := c.Store.Settings(ctx)
	switch {
	case err == nil:
		d.Settings = &settings
	case !errors.Is(err, models.ErrNotFound):
		return Detail{}, fmt.Errorf("settings %w: %w", models.ErrLoadFailed, err)
	}

	booked, err := c.Resolver.BookedDates(ctx, cabinID)
	if err != nil {
		return Detail{}, err
	}
	d.BookedDates = booking.FormatDays(booked)

	if c.Views != nil {
		if err := c.Views.Set(ctx, key, d, cabinViewTTL); err != nil {
			log.Printf("[cabins] cache %s: %v", key, err)
		}
	}
	return d, nil
}
