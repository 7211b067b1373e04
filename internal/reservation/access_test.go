package reservation

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func seedReservations(t *testing.T, catalog *memCatalog, store *memStore) (mine, theirs uint64) {
    t.Helper()
    alloc := NewAllocator(catalog, store)
    ctx := context.Background()

    a, err := alloc.CreateReservation(ctx, 1, 1, []uint64{1})
    require.NoError(t, err)
    b, err := alloc.CreateReservation(ctx, 2, 1, []uint64{2})
    require.NoError(t, err)
    return a.ID, b.ID
}

func TestListReservationsScopedToOwner(t *testing.T) {
    catalog, store := newFixture()
    mine, _ := seedReservations(t, catalog, store)
    access := NewAccess(store)
    ctx := context.Background()

    list, err := access.ListReservations(ctx, Caller{UserID: 1, Role: RoleCustomer})
    require.NoError(t, err)
    require.Len(t, list, 1)
    assert.Equal(t, mine, list[0].ID)
    assert.Equal(t, uint64(1), list[0].UserID)
}

func TestListReservationsAdminSeesAll(t *testing.T) {
    catalog, store := newFixture()
    seedReservations(t, catalog, store)
    access := NewAccess(store)

    list, err := access.ListReservations(context.Background(), Caller{UserID: 99, Role: RoleAdmin})
    require.NoError(t, err)
    assert.Len(t, list, 2)
}

func TestGetReservationOwnershipAndRole(t *testing.T) {
    catalog, store := newFixture()
    mine, theirs := seedReservations(t, catalog, store)
    access := NewAccess(store)
    ctx := context.Background()

    res, err := access.GetReservation(ctx, Caller{UserID: 1, Role: RoleCustomer}, mine)
    require.NoError(t, err)
    assert.Equal(t, mine, res.ID)

    _, err = access.GetReservation(ctx, Caller{UserID: 1, Role: RoleCustomer}, theirs)
    assert.ErrorIs(t, err, ErrForbidden)

    res, err = access.GetReservation(ctx, Caller{UserID: 99, Role: RoleAdmin}, theirs)
    require.NoError(t, err)
    assert.Equal(t, theirs, res.ID)
}

func TestGetReservationNotFoundBeforeOwnership(t *testing.T) {
    catalog, store := newFixture()
    seedReservations(t, catalog, store)
    access := NewAccess(store)

    // Unknown id is NotFound even for a caller who owns nothing.
    _, err := access.GetReservation(context.Background(), Caller{UserID: 1, Role: RoleCustomer}, 999)
    assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteReservationAdminOnly(t *testing.T) {
    catalog, store := newFixture()
    mine, _ := seedReservations(t, catalog, store)
    access := NewAccess(store)
    ctx := context.Background()

    // Owners without the admin role may not delete, even their own.
    err := access.DeleteReservation(ctx, Caller{UserID: 1, Role: RoleCustomer}, mine)
    assert.ErrorIs(t, err, ErrForbidden)

    err = access.DeleteReservation(ctx, Caller{UserID: 99, Role: RoleAdmin}, mine)
    require.NoError(t, err)

    _, err = store.GetReservation(ctx, mine)
    assert.ErrorIs(t, err, ErrReservationNotFound)

    err = access.DeleteReservation(ctx, Caller{UserID: 99, Role: RoleAdmin}, mine)
    assert.ErrorIs(t, err, ErrReservationNotFound)
}
