package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/repository"
    "github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// ScreeningHandler exposes CRUD endpoints for screenings plus the
// per-screening seat availability view backed by the occupancy index.
type ScreeningHandler struct {
    Screenings *repository.ScreeningRepo
    Films      *repository.FilmRepo
    Rooms      *repository.RoomRepo
    Occupancy  *reservation.Occupancy
}

func NewScreeningHandler(screenings *repository.ScreeningRepo, films *repository.FilmRepo, rooms *repository.RoomRepo, occ *reservation.Occupancy) *ScreeningHandler {
    return &ScreeningHandler{Screenings: screenings, Films: films, Rooms: rooms, Occupancy: occ}
}

type screeningReq struct {
    FilmID    uint64          `json:"film_id"`
    RoomID    uint64          `json:"room_id"`
    StartsAt  time.Time       `json:"starts_at"`
    Price     decimal.Decimal `json:"price"`
    Language  string          `json:"language"`
    Subtitles string          `json:"subtitles"`
}

// validate checks referential integrity of a create/update request.
func (h *ScreeningHandler) validate(c echo.Context, req *screeningReq) error {
    if req.FilmID == 0 || req.RoomID == 0 || req.StartsAt.IsZero() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "film_id, room_id and starts_at are required"})
    }
    if req.Price.IsNegative() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
    }
    ctx := c.Request().Context()
    if _, err := h.Films.GetByID(ctx, req.FilmID); err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return nil
}

// List handles GET /v1/screenings.
func (h *ScreeningHandler) List(c echo.Context) error {
    screenings, err := h.Screenings.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": screenings})
}

// Get handles GET /v1/screenings/:id.
func (h *ScreeningHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
    }
    scr, err := h.Screenings.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, reservation.ErrScreeningNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": scr})
}

// Seats handles GET /v1/screenings/:id/seats.  It returns the current
// occupancy split for the screening's room: the ids of taken seats and
// the full detail of seats still available.
func (h *ScreeningHandler) Seats(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
    }
    ctx := c.Request().Context()
    occupied, err := h.Occupancy.OccupiedSeats(ctx, id)
    if err != nil {
        if errors.Is(err, reservation.ErrScreeningNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    available, err := h.Occupancy.AvailableSeats(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    occupiedIDs := make([]uint64, 0, len(occupied))
    for seatID := range occupied {
        occupiedIDs = append(occupiedIDs, seatID)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "occupied":  occupiedIDs,
        "available": available,
    })
}

// Create handles POST /v1/screenings (admin).
func (h *ScreeningHandler) Create(c echo.Context) error {
    var req screeningReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := h.validate(c, &req); err != nil {
        return err
    }
    scr := &model.Screening{
        FilmID:    req.FilmID,
        RoomID:    req.RoomID,
        StartsAt:  req.StartsAt.UTC(),
        Price:     req.Price,
        Language:  req.Language,
        Subtitles: req.Subtitles,
    }
    if err := h.Screenings.Create(c.Request().Context(), scr); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create screening"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": scr})
}

// Update handles PUT /v1/screenings/:id (admin).  Screenings are
// immutable except through this endpoint.
func (h *ScreeningHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
    }
    var req screeningReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := h.validate(c, &req); err != nil {
        return err
    }
    scr := &model.Screening{
        ID:        id,
        FilmID:    req.FilmID,
        RoomID:    req.RoomID,
        StartsAt:  req.StartsAt.UTC(),
        Price:     req.Price,
        Language:  req.Language,
        Subtitles: req.Subtitles,
    }
    if err := h.Screenings.Update(c.Request().Context(), scr); err != nil {
        if errors.Is(err, reservation.ErrScreeningNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update screening"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": scr})
}

// Delete handles DELETE /v1/screenings/:id (admin).
func (h *ScreeningHandler) Delete(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
    }
    if err := h.Screenings.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, reservation.ErrScreeningNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete screening"})
    }
    return c.NoContent(http.StatusNoContent)
}
