package repository

import (
    "context"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// Catalog adapts the screening and seat repositories to the reservation
// engine's Catalog interface.  The engine only ever needs these two
// read-only lookups.
type Catalog struct {
    Screenings *ScreeningRepo
    Seats      *SeatRepo
}

// NewCatalog constructs a Catalog over the given repositories.
func NewCatalog(screenings *ScreeningRepo, seats *SeatRepo) *Catalog {
    return &Catalog{Screenings: screenings, Seats: seats}
}

// Screening returns the screening with the given id.
func (c *Catalog) Screening(ctx context.Context, id uint64) (*model.Screening, error) {
    return c.Screenings.GetByID(ctx, id)
}

// SeatsByRoom returns every seat of the given room.
func (c *Catalog) SeatsByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
    return c.Seats.GetByRoom(ctx, roomID)
}
