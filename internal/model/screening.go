package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Screening represents a scheduled showing of a film in a room at a
// particular time.  The unit ticket price is stored as a fixed-point
// decimal so that pricing never goes through floating point.
//
// Fields:
//  ID        – primary key identifier.
//  FilmID    – film being shown.
//  RoomID    – room where the screening takes place.
//  StartsAt  – when the screening begins (UTC).
//  Price     – unit ticket price (DECIMAL(10,2) in the database).
//  Language  – audio language of the screening.
//  Subtitles – subtitle language, empty when none.
type Screening struct {
    ID        uint64          `json:"id"`         // screenings.id
    FilmID    uint64          `json:"film_id"`    // screenings.film_id
    RoomID    uint64          `json:"room_id"`    // screenings.room_id
    StartsAt  time.Time       `json:"starts_at"`  // screenings.starts_at
    Price     decimal.Decimal `json:"price"`      // screenings.price
    Language  string          `json:"language"`   // screenings.language
    Subtitles string          `json:"subtitles"`  // screenings.subtitles
}
