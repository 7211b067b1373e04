package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticketing/internal/model"
    "github.com/iliyamo/cinema-ticketing/internal/repository"
)

// FilmHandler exposes CRUD endpoints for films.  Reads are public;
// writes sit behind the ADMIN role middleware.
type FilmHandler struct {
    Films *repository.FilmRepo
}

func NewFilmHandler(films *repository.FilmRepo) *FilmHandler {
    return &FilmHandler{Films: films}
}

type filmReq struct {
    Name        string `json:"name"`
    Description string `json:"description"`
}

// List handles GET /v1/films.
func (h *FilmHandler) List(c echo.Context) error {
    films, err := h.Films.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": films})
}

// Get handles GET /v1/films/:id.
func (h *FilmHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
    }
    film, err := h.Films.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": film})
}

// Create handles POST /v1/films (admin).
func (h *FilmHandler) Create(c echo.Context) error {
    var req filmReq
    if err := c.Bind(&req); err != nil || req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    film := &model.Film{Name: req.Name, Description: req.Description}
    if err := h.Films.Create(c.Request().Context(), film); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create film"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": film})
}

// Update handles PUT /v1/films/:id (admin).
func (h *FilmHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
    }
    var req filmReq
    if err := c.Bind(&req); err != nil || req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    film := &model.Film{ID: id, Name: req.Name, Description: req.Description}
    if err := h.Films.Update(c.Request().Context(), film); err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update film"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": film})
}

// Delete handles DELETE /v1/films/:id (admin).
func (h *FilmHandler) Delete(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid film id"})
    }
    if err := h.Films.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete film"})
    }
    return c.NoContent(http.StatusNoContent)
}
