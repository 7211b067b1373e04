package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// FilmRepo provides CRUD operations for films.
type FilmRepo struct {
    db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the given DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

// Create inserts a film record. On success the film's ID is populated.
func (r *FilmRepo) Create(ctx context.Context, f *model.Film) error {
    const q = `INSERT INTO films (name, description) VALUES (?, ?)`
    res, err := r.db.ExecContext(ctx, q, f.Name, f.Description)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    f.ID = uint64(id)
    return nil
}

// GetByID retrieves a film by its id.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (*model.Film, error) {
    const q = `SELECT id, name, description FROM films WHERE id = ?`
    var f model.Film
    err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.Name, &f.Description)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrFilmNotFound
        }
        return nil, err
    }
    return &f, nil
}

// List returns all films ordered by name.
func (r *FilmRepo) List(ctx context.Context) ([]model.Film, error) {
    const q = `SELECT id, name, description FROM films ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    films := make([]model.Film, 0)
    for rows.Next() {
        var f model.Film
        if err := rows.Scan(&f.ID, &f.Name, &f.Description); err != nil {
            return nil, err
        }
        films = append(films, f)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return films, nil
}

// Update replaces a film's name and description.
// Returns ErrFilmNotFound when no row matched.
func (r *FilmRepo) Update(ctx context.Context, f *model.Film) error {
    const q = `UPDATE films SET name = ?, description = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, f.Name, f.Description, f.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrFilmNotFound
    }
    return nil
}

// Delete removes a film by id. Returns ErrFilmNotFound when no row matched.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) error {
    const q = `DELETE FROM films WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrFilmNotFound
    }
    return nil
}
