package reservation

import (
    "context"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// Caller identifies the authenticated user on whose behalf an engine
// operation runs.  It is passed explicitly into every scoped call rather
// than read from ambient request context.
type Caller struct {
    UserID uint64
    Role   string
}

// RoleAdmin is the elevated role.  Admins see all reservations and are
// the only callers allowed to delete one.
const RoleAdmin = "ADMIN"

// RoleCustomer is the default role for registered users.
const RoleCustomer = "CUSTOMER"

// Elevated reports whether the caller holds the admin role.
func (c Caller) Elevated() bool { return c.Role == RoleAdmin }

// Catalog provides read-only lookups of screenings and room seats.  It
// must return ErrScreeningNotFound for unknown screening ids.
type Catalog interface {
    // Screening returns the screening with the given id.
    Screening(ctx context.Context, id uint64) (*model.Screening, error)
    // SeatsByRoom returns every seat of the given room.
    SeatsByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error)
}

// Store persists reservations and answers occupancy queries.  Reads must
// reflect the latest committed state at call time.  CreateReservation
// must commit the reservation row and all seat links atomically and
// return ErrCommitConflict when a concurrent writer claimed one of the
// seats; partial commits must never be observable.
type Store interface {
    // OccupiedSeatIDs returns every seat id linked, through any
    // reservation, to the given screening.
    OccupiedSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error)
    // CreateReservation atomically persists the reservation and one seat
    // link per entry of res.Seats, populating res.ID on success.
    CreateReservation(ctx context.Context, res *model.Reservation) error
    // GetReservation returns a reservation with its seats resolved, or
    // ErrReservationNotFound.
    GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
    // ListReservations returns all reservations with seats resolved.
    ListReservations(ctx context.Context) ([]model.Reservation, error)
    // ListReservationsByUser returns the reservations owned by a user.
    ListReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
    // DeleteReservation removes a reservation and all of its seat links
    // as one atomic operation, or returns ErrReservationNotFound.
    DeleteReservation(ctx context.Context, id uint64) error
}
