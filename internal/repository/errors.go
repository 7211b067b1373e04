// Package repository implements persistence over MySQL.  Sentinel error
// values defined here let handlers distinguish failure scenarios, e.g.
// translating a not-found into HTTP 404 while surfacing everything else
// as a 500.  Errors owned by the reservation engine (screening or
// reservation not found, commit conflicts) are defined in the
// reservation package and returned from here unchanged.
package repository

import "errors"

// ErrFilmNotFound is returned when a film lookup yields no rows.
var ErrFilmNotFound = errors.New("film not found")

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registering with an email that is
// already in use.  Handlers should translate this into HTTP 409.
var ErrEmailTaken = errors.New("email already registered")
