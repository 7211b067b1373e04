package reservation

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestOccupiedAndAvailablePartitionRoom(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)
    occ := NewOccupancy(catalog, store)
    ctx := context.Background()

    _, err := alloc.CreateReservation(ctx, 1, 1, []uint64{1, 4})
    require.NoError(t, err)

    occupied, err := occ.OccupiedSeats(ctx, 1)
    require.NoError(t, err)
    available, err := occ.AvailableSeats(ctx, 1)
    require.NoError(t, err)

    // Disjoint, and together they cover the room's full seat set.
    for _, s := range available {
        assert.NotContains(t, occupied, s.ID)
    }
    roomSeats, err := catalog.SeatsByRoom(ctx, 1)
    require.NoError(t, err)
    assert.Equal(t, len(roomSeats), len(occupied)+len(available))
    assert.Len(t, occupied, 2)
}

func TestOccupancyUnknownScreening(t *testing.T) {
    catalog, store := newFixture()
    occ := NewOccupancy(catalog, store)

    _, err := occ.OccupiedSeats(context.Background(), 99)
    assert.ErrorIs(t, err, ErrScreeningNotFound)

    _, err = occ.AvailableSeats(context.Background(), 99)
    assert.ErrorIs(t, err, ErrScreeningNotFound)
}

func TestOccupancyEmptyScreening(t *testing.T) {
    catalog, store := newFixture()
    occ := NewOccupancy(catalog, store)

    occupied, err := occ.OccupiedSeats(context.Background(), 1)
    require.NoError(t, err)
    assert.Empty(t, occupied)

    available, err := occ.AvailableSeats(context.Background(), 1)
    require.NoError(t, err)
    assert.Len(t, available, 6)
}

func TestDeleteFreesSeats(t *testing.T) {
    catalog, store := newFixture()
    alloc := NewAllocator(catalog, store)
    occ := NewOccupancy(catalog, store)
    access := NewAccess(store)
    ctx := context.Background()

    res, err := alloc.CreateReservation(ctx, 1, 1, []uint64{2, 3})
    require.NoError(t, err)

    admin := Caller{UserID: 100, Role: RoleAdmin}
    require.NoError(t, access.DeleteReservation(ctx, admin, res.ID))

    // Seats are back in availability immediately after the delete commits.
    available, err := occ.AvailableSeats(ctx, 1)
    require.NoError(t, err)
    assert.Len(t, available, 6)

    _, err = alloc.CreateReservation(ctx, 2, 1, []uint64{2, 3})
    assert.NoError(t, err)
}
