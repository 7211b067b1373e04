package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/queue"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/reservation"
	queue_publisher "github.com/iliyamo/cinema-ticketing/internal/service"
)

// ReservationHandler exposes the booking endpoints.  Creation goes
// through the allocator, reads and deletes go through the access layer
// so ownership scoping is applied in exactly one place.
type ReservationHandler struct {
	Allocator  *reservation.Allocator
	Access     *reservation.Access
	Screenings *repository.ScreeningRepo
	Films      *repository.FilmRepo
	Rooms      *repository.RoomRepo
}

func NewReservationHandler(alloc *reservation.Allocator, access *reservation.Access, screenings *repository.ScreeningRepo, films *repository.FilmRepo, rooms *repository.RoomRepo) *ReservationHandler {
	return &ReservationHandler{Allocator: alloc, Access: access, Screenings: screenings, Films: films, Rooms: rooms}
}

type createReservationReq struct {
	ScreeningID uint64   `json:"screening_id"`
	SeatIDs     []uint64 `json:"seat_ids"`
}

// Create handles POST /v1/reservations.  The caller books seats for
// themselves; there is no booking on behalf of another user.
func (h *ReservationHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ScreeningID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screening_id is required"})
	}

	res, err := h.Allocator.CreateReservation(c.Request().Context(), caller.UserID, req.ScreeningID, req.SeatIDs)
	if err != nil {
		var invalid *reservation.InvalidSeatsError
		var booked *reservation.SeatsBookedError
		switch {
		case errors.Is(err, reservation.ErrScreeningNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		case errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seats for screening", "seat_ids": invalid.SeatIDs})
		case errors.As(err, &booked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seats already booked", "seat_ids": booked.SeatIDs})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
		}
	}

	// Best effort: never fail a committed booking over a broker hiccup.
	go h.publishCreated(res)

	return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

// publishCreated assembles and publishes the reservation.created event.
// It runs detached from the request and logs failures instead of
// propagating them.
func (h *ReservationHandler) publishCreated(res *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		ScreeningID:   res.ScreeningID,
		Total:         res.Total.StringFixed(2),
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, s := range res.Seats {
		event.SeatLabels = append(event.SeatLabels, fmt.Sprintf("R%dC%d", s.Row, s.Column))
	}
	if scr, err := h.Screenings.GetByID(ctx, res.ScreeningID); err == nil {
		event.StartsAt = scr.StartsAt.UTC().Format(time.RFC3339)
		if film, err := h.Films.GetByID(ctx, scr.FilmID); err == nil {
			event.FilmTitle = film.Name
		}
		if room, err := h.Rooms.GetByID(ctx, scr.RoomID); err == nil {
			event.RoomName = room.Name
		}
	}
	if err := queue_publisher.PublishReservationCreated(ctx, event); err != nil {
		log.Printf("reservation %d: event publish failed: %v", res.ID, err)
	}
}

// List handles GET /v1/reservations.  Admins see every reservation,
// customers only their own.
func (h *ReservationHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	items, err := h.Access.ListReservations(c.Request().Context(), caller)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Access.GetReservation(c.Request().Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, reservation.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Delete handles DELETE /v1/reservations/:id (admin).  Deleting a
// reservation frees its seats for rebooking.
func (h *ReservationHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Access.DeleteReservation(c.Request().Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, reservation.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, reservation.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
