package reservation

import (
    "context"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestCreateReservationSuccess(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    res, err := alloc.CreateReservation(context.Background(), 42, 1, []uint64{1, 2})
    require.NoError(t, err)

    assert.NotZero(t, res.ID)
    assert.Equal(t, uint64(42), res.UserID)
    assert.Equal(t, uint64(1), res.ScreeningID)
    assert.Len(t, res.Seats, 2)
    assert.True(t, res.Subtotal.Equal(dec("20.00")), "subtotal = %s", res.Subtotal)
    assert.True(t, res.Tax.Equal(dec("1.60")), "tax = %s", res.Tax)
    assert.True(t, res.Total.Equal(dec("21.60")), "total = %s", res.Total)
    assert.False(t, res.CreatedAt.IsZero())

    // The commit is visible to occupancy immediately.
    occ, err := NewOccupancy(catalog, store).OccupiedSeats(context.Background(), 1)
    require.NoError(t, err)
    assert.Contains(t, occ, uint64(1))
    assert.Contains(t, occ, uint64(2))
}

func TestCreateReservationUnknownScreening(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    _, err := alloc.CreateReservation(context.Background(), 42, 99, []uint64{1})
    assert.ErrorIs(t, err, ErrScreeningNotFound)
}

func TestCreateReservationEmptySeats(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    _, err := alloc.CreateReservation(context.Background(), 42, 1, nil)
    var invalid *InvalidSeatsError
    require.ErrorAs(t, err, &invalid)
    assert.Empty(t, invalid.SeatIDs)
}

func TestCreateReservationDuplicateSeats(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    _, err := alloc.CreateReservation(context.Background(), 42, 1, []uint64{1, 2, 1})
    var invalid *InvalidSeatsError
    require.ErrorAs(t, err, &invalid)
    assert.Equal(t, []uint64{1}, invalid.SeatIDs)
}

func TestCreateReservationWrongRoomSeat(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    // Seat 7 belongs to room 2; screening 1 runs in room 1.
    _, err := alloc.CreateReservation(context.Background(), 42, 1, []uint64{1, 7})
    var invalid *InvalidSeatsError
    require.ErrorAs(t, err, &invalid)
    assert.Equal(t, []uint64{7}, invalid.SeatIDs)

    // No partial reservation was created; occupancy is unchanged.
    occ, err := NewOccupancy(catalog, store).OccupiedSeats(context.Background(), 1)
    require.NoError(t, err)
    assert.Empty(t, occ)
}

func TestCreateReservationNonexistentSeat(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    _, err := alloc.CreateReservation(context.Background(), 42, 1, []uint64{1, 999})
    var invalid *InvalidSeatsError
    require.ErrorAs(t, err, &invalid)
    assert.Equal(t, []uint64{999}, invalid.SeatIDs)
}

func TestCreateReservationSeatAlreadyBooked(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)
    ctx := context.Background()

    _, err := alloc.CreateReservation(ctx, 1, 1, []uint64{3})
    require.NoError(t, err)

    _, err = alloc.CreateReservation(ctx, 2, 1, []uint64{2, 3})
    var booked *SeatsBookedError
    require.ErrorAs(t, err, &booked)
    assert.Equal(t, []uint64{3}, booked.SeatIDs)

    // The same seat is still free on a different screening's room.
    _, err = alloc.CreateReservation(ctx, 2, 2, []uint64{7})
    assert.NoError(t, err)
}

func TestCreateReservationCommitConflictAsBooked(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)

    store.failNext = ErrCommitConflict
    _, err := alloc.CreateReservation(context.Background(), 1, 1, []uint64{4})
    var booked *SeatsBookedError
    require.ErrorAs(t, err, &booked)
    assert.Equal(t, []uint64{4}, booked.SeatIDs)
}

func TestConcurrentBookingExactlyOneWins(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)
    ctx := context.Background()

    const n = 32
    var wg sync.WaitGroup
    errs := make([]error, n)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = alloc.CreateReservation(ctx, uint64(i+1), 1, []uint64{5})
        }(i)
    }
    wg.Wait()

    successes := 0
    for _, err := range errs {
        if err == nil {
            successes++
            continue
        }
        var booked *SeatsBookedError
        assert.ErrorAs(t, err, &booked)
    }
    assert.Equal(t, 1, successes, "exactly one racing booking must win")

    // Seat 5 appears in exactly one committed reservation.
    all, err := store.ListReservations(ctx)
    require.NoError(t, err)
    holders := 0
    for _, res := range all {
        for _, s := range res.Seats {
            if s.ID == 5 {
                holders++
            }
        }
    }
    assert.Equal(t, 1, holders)
}
