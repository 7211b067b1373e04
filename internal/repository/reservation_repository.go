package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// mysqlDupEntry is the MySQL error number for a unique key violation.
const mysqlDupEntry = 1062

// ReservationRepo persists reservations and their seat links and
// implements the reservation engine's Store interface.  A reservation
// and its reservation_seats rows are always written and removed inside
// a single transaction; a partially committed reservation is never
// observable.  All timestamp fields are stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// OccupiedSeatIDs returns every seat id linked, through any reservation,
// to the given screening.  The reservation_seats row carries no
// screening column, so the screening is reached by joining through the
// parent reservation.
func (r *ReservationRepo) OccupiedSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error) {
    const q = `SELECT rs.seat_id
	           FROM reservation_seats rs
	           JOIN reservations r ON r.id = rs.reservation_id
	           WHERE r.screening_id = ?`
    rows, err := r.db.QueryContext(ctx, q, screeningID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}

// CreateReservation inserts the reservation row plus one
// reservation_seats row per booked seat as a single transaction and
// populates the generated ID.  A duplicate-key failure on the seat
// links is reported as reservation.ErrCommitConflict so the allocator
// can surface it as a booking conflict rather than a fatal error.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO reservations (user_id, screening_id, subtotal, discount, tax, total, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.UserID, res.ScreeningID, res.Subtotal, res.Discount, res.Tax, res.Total, res.CreatedAt.UTC(),
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)

    links := make([]model.ReservationSeat, 0, len(res.Seats))
    for _, seat := range res.Seats {
        links = append(links, model.ReservationSeat{ReservationID: res.ID, SeatID: seat.ID})
    }
    query := `INSERT INTO reservation_seats (reservation_id, seat_id) VALUES `
    args := make([]interface{}, 0, len(links)*2)
    for i, link := range links {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, link.ReservationID, link.SeatID)
    }
    if _, err := tx.ExecContext(ctx, query, args...); err != nil {
        if isDupEntry(err) {
            return reservation.ErrCommitConflict
        }
        return err
    }

    if err := tx.Commit(); err != nil {
        if isDupEntry(err) {
            return reservation.ErrCommitConflict
        }
        return err
    }
    committed = true
    return nil
}

// GetReservation returns a reservation by id with its seats resolved.
func (r *ReservationRepo) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT id, user_id, screening_id, subtotal, discount, tax, total, created_at
	           FROM reservations WHERE id = ?`
    var res model.Reservation
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &res.ID, &res.UserID, &res.ScreeningID,
        &res.Subtotal, &res.Discount, &res.Tax, &res.Total, &res.CreatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrReservationNotFound
        }
        return nil, err
    }
    seats, err := r.seatsFor(ctx, []uint64{res.ID})
    if err != nil {
        return nil, err
    }
    res.Seats = seats[res.ID]
    if res.Seats == nil {
        res.Seats = []model.Seat{}
    }
    return &res, nil
}

// ListReservations returns all reservations with seats resolved,
// ordered by creation time descending (newest first).
func (r *ReservationRepo) ListReservations(ctx context.Context) ([]model.Reservation, error) {
    const q = `SELECT id, user_id, screening_id, subtotal, discount, tax, total, created_at
	           FROM reservations ORDER BY created_at DESC`
    return r.queryReservations(ctx, q)
}

// ListReservationsByUser returns the reservations owned by a user,
// newest first.
func (r *ReservationRepo) ListReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    const q = `SELECT id, user_id, screening_id, subtotal, discount, tax, total, created_at
	           FROM reservations WHERE user_id = ? ORDER BY created_at DESC`
    return r.queryReservations(ctx, q, userID)
}

// DeleteReservation removes a reservation and all of its seat links in
// one transaction.  Deleting the links first keeps the operation valid
// under the restrictive foreign keys on reservation_seats.
func (r *ReservationRepo) DeleteReservation(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const delSeats = `DELETE FROM reservation_seats WHERE reservation_id = ?`
    if _, err := tx.ExecContext(ctx, delSeats, id); err != nil {
        return err
    }
    const delRes = `DELETE FROM reservations WHERE id = ?`
    result, err := tx.ExecContext(ctx, delRes, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return reservation.ErrReservationNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// queryReservations runs a reservations SELECT and resolves the seats
// of every returned row in one additional query.
func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    reservations := make([]model.Reservation, 0)
    ids := make([]uint64, 0)
    for rows.Next() {
        var res model.Reservation
        if err := rows.Scan(
            &res.ID, &res.UserID, &res.ScreeningID,
            &res.Subtotal, &res.Discount, &res.Tax, &res.Total, &res.CreatedAt,
        ); err != nil {
            return nil, err
        }
        res.Seats = []model.Seat{}
        reservations = append(reservations, res)
        ids = append(ids, res.ID)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(reservations) == 0 {
        return reservations, nil
    }
    seats, err := r.seatsFor(ctx, ids)
    if err != nil {
        return nil, err
    }
    for i := range reservations {
        if s, ok := seats[reservations[i].ID]; ok {
            reservations[i].Seats = s
        }
    }
    return reservations, nil
}

// seatsFor loads the resolved seat details for a set of reservations in
// a single IN query, keyed by reservation id.
func (r *ReservationRepo) seatsFor(ctx context.Context, reservationIDs []uint64) (map[uint64][]model.Seat, error) {
    placeholders := make([]string, len(reservationIDs))
    args := make([]interface{}, len(reservationIDs))
    for i, id := range reservationIDs {
        placeholders[i] = "?"
        args[i] = id
    }
    query := `SELECT rs.reservation_id, se.id, se.room_id, se.seat_row, se.seat_column
	          FROM reservation_seats rs
	          JOIN seats se ON se.id = rs.seat_id
	          WHERE rs.reservation_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY rs.reservation_id, se.seat_row, se.seat_column`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make(map[uint64][]model.Seat, len(reservationIDs))
    for rows.Next() {
        var rid uint64
        var s model.Seat
        if err := rows.Scan(&rid, &s.ID, &s.RoomID, &s.Row, &s.Column); err != nil {
            return nil, err
        }
        out[rid] = append(out[rid], s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// isDupEntry reports whether err is a MySQL unique key violation.
func isDupEntry(err error) bool {
    var my *mysql.MySQLError
    return errors.As(err, &my) && my.Number == mysqlDupEntry
}
