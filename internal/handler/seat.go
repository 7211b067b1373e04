package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/repository"
)

// SeatHandler exposes admin endpoints for individual seats.  Seat
// membership to a room is immutable, so there is no update operation:
// a misplaced seat is deleted and re-created.
type SeatHandler struct {
    Seats *repository.SeatRepo
    Rooms *repository.RoomRepo
}

func NewSeatHandler(seats *repository.SeatRepo, rooms *repository.RoomRepo) *SeatHandler {
    return &SeatHandler{Seats: seats, Rooms: rooms}
}

type seatReq struct {
    RoomID uint64 `json:"room_id"`
    Row    uint32 `json:"row"`
    Column uint32 `json:"column"`
}

// Get handles GET /v1/seats/:id.
func (h *SeatHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    seat, err := h.Seats.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": seat})
}

// Create handles POST /v1/seats (admin).
func (h *SeatHandler) Create(c echo.Context) error {
    var req seatReq
    if err := c.Bind(&req); err != nil || req.RoomID == 0 || req.Row == 0 || req.Column == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id, row and column are required"})
    }
    ctx := c.Request().Context()
    if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    seat := &model.Seat{RoomID: req.RoomID, Row: req.Row, Column: req.Column}
    if err := h.Seats.Create(ctx, seat); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seat"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": seat})
}

// Delete handles DELETE /v1/seats/:id (admin).
func (h *SeatHandler) Delete(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    if err := h.Seats.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete seat"})
    }
    return c.NoContent(http.StatusNoContent)
}
