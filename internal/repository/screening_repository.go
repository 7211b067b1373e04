package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// ScreeningRepo provides CRUD operations for screenings.  Lookups
// return the engine's reservation.ErrScreeningNotFound sentinel so the
// allocator and the HTTP layer agree on the failure mode.
type ScreeningRepo struct {
    db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{db: db} }

// Create inserts a screening record. On success the screening's ID is
// populated.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
    const q = `INSERT INTO screenings (film_id, room_id, starts_at, price, language, subtitles)
	           VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.FilmID, s.RoomID, s.StartsAt.UTC(), s.Price, s.Language, s.Subtitles)
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

// GetByID retrieves a screening by its id.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
    const q = `SELECT id, film_id, room_id, starts_at, price, language, subtitles
	           FROM screenings WHERE id = ?`
    var s model.Screening
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &s.ID, &s.FilmID, &s.RoomID, &s.StartsAt, &s.Price, &s.Language, &s.Subtitles,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrScreeningNotFound
        }
        return nil, err
    }
    return &s, nil
}

// List returns all screenings ordered by start time.
func (r *ScreeningRepo) List(ctx context.Context) ([]model.Screening, error) {
    const q = `SELECT id, film_id, room_id, starts_at, price, language, subtitles
	           FROM screenings ORDER BY starts_at`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    screenings := make([]model.Screening, 0)
    for rows.Next() {
        var s model.Screening
        if err := rows.Scan(&s.ID, &s.FilmID, &s.RoomID, &s.StartsAt, &s.Price, &s.Language, &s.Subtitles); err != nil {
            return nil, err
        }
        screenings = append(screenings, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return screenings, nil
}

// Update replaces every mutable field of a screening.  Screenings are
// immutable except through this explicit admin update.
func (r *ScreeningRepo) Update(ctx context.Context, s *model.Screening) error {
    const q = `UPDATE screenings
	           SET film_id = ?, room_id = ?, starts_at = ?, price = ?, language = ?, subtitles = ?
	           WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, s.FilmID, s.RoomID, s.StartsAt.UTC(), s.Price, s.Language, s.Subtitles, s.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return reservation.ErrScreeningNotFound
    }
    return nil
}

// Delete removes a screening by id.
func (r *ScreeningRepo) Delete(ctx context.Context, id uint64) error {
    const q = `DELETE FROM screenings WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return reservation.ErrScreeningNotFound
    }
    return nil
}
