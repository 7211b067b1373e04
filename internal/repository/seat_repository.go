package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// SeatRepo provides data access for seats.  A seat belongs to exactly
// one room; its room membership never changes after creation.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
    return &SeatRepo{db: db}
}

// Create inserts a single seat record. On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
    const q = `INSERT INTO seats (room_id, seat_row, seat_column) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.RoomID, s.Row, s.Column)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

// CreateBulk inserts multiple seats in a single statement.  Passing an
// empty slice has no effect and returns nil.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
    if len(seats) == 0 {
        return nil
    }
    query := `INSERT INTO seats (room_id, seat_row, seat_column) VALUES `
    args := make([]interface{}, 0, len(seats)*3)
    for i, seat := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?)"
        args = append(args, seat.RoomID, seat.Row, seat.Column)
    }
    _, err := r.db.ExecContext(ctx, query, args...)
    return err
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
    const q = `SELECT id, room_id, seat_row, seat_column FROM seats WHERE id = ?`
    var s model.Seat
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.RoomID, &s.Row, &s.Column)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrSeatNotFound
        }
        return nil, err
    }
    return &s, nil
}

// GetByRoom retrieves all seats of a room ordered by row then column.
func (r *SeatRepo) GetByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
    const q = `SELECT id, room_id, seat_row, seat_column
	           FROM seats
	           WHERE room_id = ?
	           ORDER BY seat_row, seat_column`
    rows, err := r.db.QueryContext(ctx, q, roomID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    seats := make([]model.Seat, 0)
    for rows.Next() {
        var s model.Seat
        if err := rows.Scan(&s.ID, &s.RoomID, &s.Row, &s.Column); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return seats, nil
}

// Delete removes a seat by id. Returns ErrSeatNotFound when no row matched.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
    const q = `DELETE FROM seats WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrSeatNotFound
    }
    return nil
}
