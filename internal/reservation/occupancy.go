package reservation

import (
    "context"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// Occupancy answers seat-availability queries for screenings.  It is
// read-only and never caches: every call reflects the latest committed
// state of the store.
type Occupancy struct {
    catalog Catalog
    store   Store
}

// NewOccupancy constructs an Occupancy over the given catalog and store.
func NewOccupancy(catalog Catalog, store Store) *Occupancy {
    if catalog == nil || store == nil {
        panic("nil dependency passed to NewOccupancy")
    }
    return &Occupancy{catalog: catalog, store: store}
}

// OccupiedSeats returns the set of seat ids currently linked, through
// any reservation, to the given screening.  Unknown screenings yield
// ErrScreeningNotFound.
func (o *Occupancy) OccupiedSeats(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error) {
    if _, err := o.catalog.Screening(ctx, screeningID); err != nil {
        return nil, err
    }
    ids, err := o.store.OccupiedSeatIDs(ctx, screeningID)
    if err != nil {
        return nil, err
    }
    occupied := make(map[uint64]struct{}, len(ids))
    for _, id := range ids {
        occupied[id] = struct{}{}
    }
    return occupied, nil
}

// AvailableSeats returns the seats of the screening's room that are not
// part of any reservation for the screening.  Occupied and available are
// disjoint by construction and together cover the room's full seat set.
func (o *Occupancy) AvailableSeats(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
    scr, err := o.catalog.Screening(ctx, screeningID)
    if err != nil {
        return nil, err
    }
    ids, err := o.store.OccupiedSeatIDs(ctx, screeningID)
    if err != nil {
        return nil, err
    }
    occupied := make(map[uint64]struct{}, len(ids))
    for _, id := range ids {
        occupied[id] = struct{}{}
    }
    seats, err := o.catalog.SeatsByRoom(ctx, scr.RoomID)
    if err != nil {
        return nil, err
    }
    available := make([]model.Seat, 0, len(seats))
    for _, s := range seats {
        if _, taken := occupied[s.ID]; !taken {
            available = append(available, s)
        }
    }
    return available, nil
}
