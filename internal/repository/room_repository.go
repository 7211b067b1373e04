package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/cinema-ticketing/internal/model"
)

// RoomRepo provides CRUD operations for rooms.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a room record. On success the room's ID is populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
    const q = `INSERT INTO rooms (name) VALUES (?)`
    res, err := r.db.ExecContext(ctx, q, room.Name)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    room.ID = uint64(id)
    return nil
}

// GetByID retrieves a room by its id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT id, name FROM rooms WHERE id = ?`
    var room model.Room
    err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &room, nil
}

// List returns all rooms ordered by name.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT id, name FROM rooms ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    rooms := make([]model.Room, 0)
    for rows.Next() {
        var room model.Room
        if err := rows.Scan(&room.ID, &room.Name); err != nil {
            return nil, err
        }
        rooms = append(rooms, room)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return rooms, nil
}

// Update renames a room. Returns ErrRoomNotFound when no row matched.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
    const q = `UPDATE rooms SET name = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, room.Name, room.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRoomNotFound
    }
    return nil
}

// Delete removes a room by id. Returns ErrRoomNotFound when no row matched.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    const q = `DELETE FROM rooms WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRoomNotFound
    }
    return nil
}
