package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/utils"
)

// UserRepo provides data access for application users.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user with a bcrypt-hashed password and returns the
// new user id.  A duplicate email yields ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, bcryptCost int) (uint64, error) {
    hash, err := utils.HashPassword(password, bcryptCost)
    if err != nil {
        return 0, err
    }
    const q = `INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, email, hash, role)
    if err != nil {
        if isDupEntry(err) {
            return 0, ErrEmailTaken
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    const q = `SELECT id, email, password_hash, role, first_name, last_name, created_at, updated_at
	           FROM users WHERE email = ?`
    var u model.User
    err := r.db.QueryRowContext(ctx, q, email).
        Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return &u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    const q = `SELECT id, email, password_hash, role, first_name, last_name, created_at, updated_at
	           FROM users WHERE id = ?`
    var u model.User
    err := r.db.QueryRowContext(ctx, q, id).
        Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return &u, nil
}

// List retrieves all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
    const q = `SELECT id, email, password_hash, role, first_name, last_name, created_at, updated_at
	           FROM users ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    users := make([]model.User, 0)
    for rows.Next() {
        var u model.User
        if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
            return nil, err
        }
        users = append(users, u)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return users, nil
}

// UpdateProfile sets the user's first and last name.  Returns
// ErrUserNotFound when no row matched.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName string) error {
    const q = `UPDATE users SET first_name = ?, last_name = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, firstName, lastName, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrUserNotFound
    }
    return nil
}

// UpdatePassword replaces the user's password hash.  The caller is
// responsible for verifying the current password first.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, bcryptCost int) error {
    hash, err := utils.HashPassword(password, bcryptCost)
    if err != nil {
        return err
    }
    const q = `UPDATE users SET password_hash = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, hash, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrUserNotFound
    }
    return nil
}

// Delete removes a user and their refresh tokens in one transaction.
// The tokens go first to satisfy the foreign key on refresh_tokens.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
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

    const delTokens = `DELETE FROM refresh_tokens WHERE user_id = ?`
    if _, err := tx.ExecContext(ctx, delTokens, id); err != nil {
        return err
    }
    const delUser = `DELETE FROM users WHERE id = ?`
    res, err := tx.ExecContext(ctx, delUser, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrUserNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
