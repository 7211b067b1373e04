package reservation

import (
    "context"
    "sync"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// memCatalog is an in-memory Catalog used by the engine tests.
type memCatalog struct {
    screenings map[uint64]model.Screening
    seats      []model.Seat
}

func (c *memCatalog) Screening(_ context.Context, id uint64) (*model.Screening, error) {
    scr, ok := c.screenings[id]
    if !ok {
        return nil, ErrScreeningNotFound
    }
    return &scr, nil
}

func (c *memCatalog) SeatsByRoom(_ context.Context, roomID uint64) ([]model.Seat, error) {
    var out []model.Seat
    for _, s := range c.seats {
        if s.RoomID == roomID {
            out = append(out, s)
        }
    }
    return out, nil
}

// memStore is an in-memory Store.  Like a database with a uniqueness
// constraint, CreateReservation re-checks seat availability under its
// own lock and fails with ErrCommitConflict on a duplicate claim, so
// the allocator's conflict handling can be exercised directly via
// failNext or indirectly by bypassing the allocator lock.
type memStore struct {
    mu           sync.Mutex
    nextID       uint64
    reservations map[uint64]*model.Reservation
    failNext     error
}

func newMemStore() *memStore {
    return &memStore{reservations: make(map[uint64]*model.Reservation)}
}

func (s *memStore) OccupiedSeatIDs(_ context.Context, screeningID uint64) ([]uint64, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var ids []uint64
    for _, res := range s.reservations {
        if res.ScreeningID != screeningID {
            continue
        }
        for _, seat := range res.Seats {
            ids = append(ids, seat.ID)
        }
    }
    return ids, nil
}

func (s *memStore) CreateReservation(_ context.Context, res *model.Reservation) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.failNext != nil {
        err := s.failNext
        s.failNext = nil
        return err
    }
    for _, existing := range s.reservations {
        if existing.ScreeningID != res.ScreeningID {
            continue
        }
        for _, taken := range existing.Seats {
            for _, seat := range res.Seats {
                if seat.ID == taken.ID {
                    return ErrCommitConflict
                }
            }
        }
    }
    s.nextID++
    res.ID = s.nextID
    stored := *res
    stored.Seats = append([]model.Seat(nil), res.Seats...)
    s.reservations[res.ID] = &stored
    return nil
}

func (s *memStore) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    res, ok := s.reservations[id]
    if !ok {
        return nil, ErrReservationNotFound
    }
    out := *res
    out.Seats = append([]model.Seat(nil), res.Seats...)
    return &out, nil
}

func (s *memStore) ListReservations(_ context.Context) ([]model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Reservation, 0, len(s.reservations))
    for _, res := range s.reservations {
        r := *res
        r.Seats = append([]model.Seat(nil), res.Seats...)
        out = append(out, r)
    }
    return out, nil
}

func (s *memStore) ListReservationsByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []model.Reservation
    for _, res := range s.reservations {
        if res.UserID != userID {
            continue
        }
        r := *res
        r.Seats = append([]model.Seat(nil), res.Seats...)
        out = append(out, r)
    }
    return out, nil
}

func (s *memStore) DeleteReservation(_ context.Context, id uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.reservations[id]; !ok {
        return ErrReservationNotFound
    }
    delete(s.reservations, id)
    return nil
}

// newFixture builds a catalog with one 2x3 room (seats 1..6, room 1), a
// second room with seats 7..8, and a screening of each room priced at
// 10.00 and 12.50 respectively.
func newFixture() (*memCatalog, *memStore) {
    catalog := &memCatalog{
        screenings: map[uint64]model.Screening{
            1: {ID: 1, FilmID: 1, RoomID: 1, Price: dec("10.00"), Language: "EN"},
            2: {ID: 2, FilmID: 1, RoomID: 2, Price: dec("12.50"), Language: "PL"},
        },
    }
    id := uint64(0)
    for row := uint32(1); row <= 2; row++ {
        for col := uint32(1); col <= 3; col++ {
            id++
            catalog.seats = append(catalog.seats, model.Seat{ID: id, RoomID: 1, Row: row, Column: col})
        }
    }
    catalog.seats = append(catalog.seats,
        model.Seat{ID: 7, RoomID: 2, Row: 1, Column: 1},
        model.Seat{ID: 8, RoomID: 2, Row: 1, Column: 2},
    )
    return catalog, newMemStore()
}
