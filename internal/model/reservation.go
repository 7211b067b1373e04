package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Reservation records a user's booking for a specific screening.  It
// aggregates one or more seats booked in a single transaction together
// with the monetary breakdown computed at booking time.  A reservation
// and its seat links are always created and deleted together; a
// partially persisted reservation is never observable.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the reservation.
//  ScreeningID – screening being booked.
//  Subtotal    – unit price times number of seats.
//  Discount    – always zero; reserved for future discount rules.
//  Tax         – 8% of the subtotal, rounded to 2 decimal places.
//  Total       – subtotal minus discount plus tax.
//  CreatedAt   – when the booking was committed.
//  Seats       – resolved seat details for the booked seats.
type Reservation struct {
    ID          uint64          `json:"id"`           // reservations.id
    UserID      uint64          `json:"user_id"`      // reservations.user_id
    ScreeningID uint64          `json:"screening_id"` // reservations.screening_id
    Subtotal    decimal.Decimal `json:"subtotal"`     // reservations.subtotal
    Discount    decimal.Decimal `json:"discount"`     // reservations.discount
    Tax         decimal.Decimal `json:"tax"`          // reservations.tax
    Total       decimal.Decimal `json:"total"`        // reservations.total
    CreatedAt   time.Time       `json:"created_at"`   // reservations.created_at
    Seats       []Seat          `json:"seats"`        // resolved via reservation_seats
}

// ReservationSeat links a reservation to one booked seat.  The record
// intentionally carries no screening id; the screening is reached by
// joining through the parent reservation.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reference to the reservation.
//  SeatID        – seat that has been booked.
type ReservationSeat struct {
    ID            uint64 // reservation_seats.id
    ReservationID uint64 // reservation_seats.reservation_id
    SeatID        uint64 // reservation_seats.seat_id
}
