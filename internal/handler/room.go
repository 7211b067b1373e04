package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/repository"
)

// RoomHandler exposes CRUD endpoints for rooms plus the room's seat
// listing.  Reads are public; writes sit behind the ADMIN role
// middleware.
type RoomHandler struct {
    Rooms *repository.RoomRepo
    Seats *repository.SeatRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, seats *repository.SeatRepo) *RoomHandler {
    return &RoomHandler{Rooms: rooms, Seats: seats}
}

type roomReq struct {
    Name string `json:"name"`
    // Optional layout: when both are positive the seats grid is
    // generated together with the room.
    Rows    uint32 `json:"rows"`
    Columns uint32 `json:"columns"`
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
    rooms, err := h.Rooms.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    room, err := h.Rooms.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// ListSeats handles GET /v1/rooms/:id/seats.
func (h *RoomHandler) ListSeats(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    if _, err := h.Rooms.GetByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    seats, err := h.Seats.GetByRoom(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": seats})
}

// Create handles POST /v1/rooms (admin).  When a layout is provided,
// the full seat grid is generated in one bulk insert.
func (h *RoomHandler) Create(c echo.Context) error {
    var req roomReq
    if err := c.Bind(&req); err != nil || req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    ctx := c.Request().Context()
    room := &model.Room{Name: req.Name}
    if err := h.Rooms.Create(ctx, room); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
    }
    if req.Rows > 0 && req.Columns > 0 {
        seats := make([]model.Seat, 0, int(req.Rows)*int(req.Columns))
        for row := uint32(1); row <= req.Rows; row++ {
            for col := uint32(1); col <= req.Columns; col++ {
                seats = append(seats, model.Seat{RoomID: room.ID, Row: row, Column: col})
            }
        }
        if err := h.Seats.CreateBulk(ctx, seats); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
        }
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": room})
}

// Update handles PUT /v1/rooms/:id (admin).
func (h *RoomHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req roomReq
    if err := c.Bind(&req); err != nil || req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    room := &model.Room{ID: id, Name: req.Name}
    if err := h.Rooms.Update(c.Request().Context(), room); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// Delete handles DELETE /v1/rooms/:id (admin).
func (h *RoomHandler) Delete(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
    }
    return c.NoContent(http.StatusNoContent)
}
