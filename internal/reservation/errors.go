// Package reservation implements the seat-reservation engine: occupancy
// queries, pricing, the booking allocator and access scoping.  The engine
// talks to storage through the Catalog and Store interfaces so that the
// MySQL repositories and in-memory test doubles are interchangeable.
package reservation

import (
    "errors"
    "fmt"
    "sort"
    "strings"
)

// ErrScreeningNotFound is returned when a screening lookup yields no rows.
var ErrScreeningNotFound = errors.New("screening not found")

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrForbidden is returned when the caller attempts an operation on a
// reservation they do not own and lacks the ADMIN role.  Handlers should
// translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrCommitConflict is returned by Store implementations when a commit
// fails because a concurrent writer claimed one of the requested seats
// between validation and commit.  The allocator converts it into a
// SeatsBookedError so callers see the same failure mode as an upfront
// conflict.  It is transient and must never be treated as fatal.
var ErrCommitConflict = errors.New("commit conflict")

// InvalidSeatsError reports seat ids that failed validation: ids that do
// not exist, belong to a different room than the screening's room, or
// appear more than once in the request.  An empty seat list is reported
// with no ids.
type InvalidSeatsError struct {
    SeatIDs []uint64
}

func (e *InvalidSeatsError) Error() string {
    if len(e.SeatIDs) == 0 {
        return "no seats requested"
    }
    return fmt.Sprintf("invalid seats: %s", joinIDs(e.SeatIDs))
}

// SeatsBookedError reports seat ids that are already attached to a
// committed reservation for the requested screening.
type SeatsBookedError struct {
    SeatIDs []uint64
}

func (e *SeatsBookedError) Error() string {
    return fmt.Sprintf("seats already booked: %s", joinIDs(e.SeatIDs))
}

// joinIDs renders seat ids as a stable comma-separated list for error
// messages.  Sorting keeps messages deterministic regardless of map
// iteration order upstream.
func joinIDs(ids []uint64) string {
    sorted := make([]uint64, len(ids))
    copy(sorted, ids)
    sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
    parts := make([]string, len(sorted))
    for i, id := range sorted {
        parts[i] = fmt.Sprintf("%d", id)
    }
    return strings.Join(parts, ", ")
}
