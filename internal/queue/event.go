// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// committed. It carries enough context for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64   `json:"reservation_id"`
	UserID        uint64   `json:"user_id"`
	ScreeningID   uint64   `json:"screening_id"`
	FilmTitle     string   `json:"film_title"`
	RoomName      string   `json:"room_name"`
	StartsAt      string   `json:"starts_at"`
	SeatLabels    []string `json:"seats"`
	Total         string   `json:"total"`
	CreatedAt     string   `json:"created_at"`
}
