package reservation

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// Allocator is the core state-changing operation of the engine: it
// validates a requested seat set against the room and the current
// occupancy, prices the booking and commits the reservation atomically.
//
// Concurrency: two racing bookings for the same screening could both
// validate against a stale occupancy snapshot and then both commit the
// same seat.  The allocator prevents that with a per-screening mutex
// held across validate-then-commit.  A commit-time conflict surfaced by
// the store (concurrent writer outside this lock, e.g. another process)
// is converted into SeatsBookedError rather than treated as fatal.
type Allocator struct {
    catalog Catalog
    store   Store
    locks   screeningLocks
}

// NewAllocator constructs an Allocator over the given catalog and store.
func NewAllocator(catalog Catalog, store Store) *Allocator {
    if catalog == nil || store == nil {
        panic("nil dependency passed to NewAllocator")
    }
    return &Allocator{catalog: catalog, store: store}
}

// CreateReservation books the given seats for the screening on behalf of
// the user.  Validation runs in order, each step a distinct failure mode:
//
//  1. unknown screening            -> ErrScreeningNotFound
//  2. empty, duplicate, unknown or
//     wrong-room seat ids          -> *InvalidSeatsError (offending ids)
//  3. seat already reserved        -> *SeatsBookedError (conflicting ids)
//
// On success the returned reservation is fully populated, including the
// resolved seat detail and the monetary breakdown.  Conflicts are never
// silently retried; retry policy belongs to the caller.
func (a *Allocator) CreateReservation(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) (*model.Reservation, error) {
    scr, err := a.catalog.Screening(ctx, screeningID)
    if err != nil {
        return nil, err
    }

    if len(seatIDs) == 0 {
        return nil, &InvalidSeatsError{}
    }
    // Duplicate ids in the request are reported as invalid, not deduped.
    seen := make(map[uint64]struct{}, len(seatIDs))
    var dupes []uint64
    for _, id := range seatIDs {
        if _, ok := seen[id]; ok {
            dupes = append(dupes, id)
            continue
        }
        seen[id] = struct{}{}
    }
    if len(dupes) > 0 {
        return nil, &InvalidSeatsError{SeatIDs: dupes}
    }

    roomSeats, err := a.catalog.SeatsByRoom(ctx, scr.RoomID)
    if err != nil {
        return nil, err
    }
    byID := make(map[uint64]model.Seat, len(roomSeats))
    for _, s := range roomSeats {
        byID[s.ID] = s
    }
    var invalid []uint64
    for _, id := range seatIDs {
        if _, ok := byID[id]; !ok {
            invalid = append(invalid, id)
        }
    }
    if len(invalid) > 0 {
        return nil, &InvalidSeatsError{SeatIDs: invalid}
    }

    // Hold the screening lock across the occupancy check and the commit
    // so no other in-process booking can interleave between them.
    unlock := a.locks.lock(screeningID)
    defer unlock()

    occupiedIDs, err := a.store.OccupiedSeatIDs(ctx, screeningID)
    if err != nil {
        return nil, err
    }
    occupied := make(map[uint64]struct{}, len(occupiedIDs))
    for _, id := range occupiedIDs {
        occupied[id] = struct{}{}
    }
    var conflicts []uint64
    for _, id := range seatIDs {
        if _, taken := occupied[id]; taken {
            conflicts = append(conflicts, id)
        }
    }
    if len(conflicts) > 0 {
        return nil, &SeatsBookedError{SeatIDs: conflicts}
    }

    quote := Price(scr.Price, len(seatIDs))
    seats := make([]model.Seat, 0, len(seatIDs))
    for _, id := range seatIDs {
        seats = append(seats, byID[id])
    }
    res := &model.Reservation{
        UserID:      userID,
        ScreeningID: screeningID,
        Subtotal:    quote.Subtotal,
        Discount:    quote.Discount,
        Tax:         quote.Tax,
        Total:       quote.Total,
        CreatedAt:   time.Now().UTC(),
        Seats:       seats,
    }
    if err := a.store.CreateReservation(ctx, res); err != nil {
        if errors.Is(err, ErrCommitConflict) {
            // A writer outside this process took one of the seats between
            // the check and the commit.  Same failure mode for the caller.
            return nil, &SeatsBookedError{SeatIDs: seatIDs}
        }
        return nil, err
    }
    return res, nil
}

// screeningLocks hands out one mutex per screening id.  Mutexes are
// created lazily and kept for the lifetime of the process; the number of
// screenings is small enough that no eviction is needed.
type screeningLocks struct {
    mu sync.Mutex
    m  map[uint64]*sync.Mutex
}

// lock acquires the mutex for the screening and returns its unlock func.
func (l *screeningLocks) lock(screeningID uint64) func() {
    l.mu.Lock()
    if l.m == nil {
        l.m = make(map[uint64]*sync.Mutex)
    }
    sm, ok := l.m[screeningID]
    if !ok {
        sm = &sync.Mutex{}
        l.m[screeningID] = sm
    }
    l.mu.Unlock()
    sm.Lock()
    return sm.Unlock
}
