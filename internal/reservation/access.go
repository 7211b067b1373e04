package reservation

import (
    "context"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// Access filters which reservations a caller may view or delete based on
// their identity and role.  The caller is always passed explicitly;
// nothing here reads identity from ambient context.
type Access struct {
    store Store
}

// NewAccess constructs an Access layer over the given store.
func NewAccess(store Store) *Access {
    if store == nil {
        panic("nil store passed to NewAccess")
    }
    return &Access{store: store}
}

// ListReservations returns every reservation for admin callers and only
// the caller's own reservations otherwise.
func (a *Access) ListReservations(ctx context.Context, caller Caller) ([]model.Reservation, error) {
    if caller.Elevated() {
        return a.store.ListReservations(ctx)
    }
    return a.store.ListReservationsByUser(ctx, caller.UserID)
}

// GetReservation returns a single reservation.  Unknown ids yield
// ErrReservationNotFound before any ownership check; an ownership
// mismatch without the admin role yields ErrForbidden.
func (a *Access) GetReservation(ctx context.Context, caller Caller, id uint64) (*model.Reservation, error) {
    res, err := a.store.GetReservation(ctx, id)
    if err != nil {
        return nil, err
    }
    if !caller.Elevated() && res.UserID != caller.UserID {
        return nil, ErrForbidden
    }
    return res, nil
}

// DeleteReservation removes a reservation and all of its seat links,
// freeing the seats back into availability for the screening.  Only
// admin callers may delete; the store performs the cascade atomically.
func (a *Access) DeleteReservation(ctx context.Context, caller Caller, id uint64) error {
    if !caller.Elevated() {
        return ErrForbidden
    }
    return a.store.DeleteReservation(ctx, id)
}
