package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// fakeCatalog and fakeStore back the engine in handler tests so no
// database is needed.  Screening 1 runs in room 1 (seats 1..4); seat 2
// is already booked by user 2 through reservation 7.

type fakeCatalog struct {
	screenings map[uint64]*model.Screening
	seats      map[uint64][]model.Seat
}

func (f *fakeCatalog) Screening(_ context.Context, id uint64) (*model.Screening, error) {
	scr, ok := f.screenings[id]
	if !ok {
		return nil, reservation.ErrScreeningNotFound
	}
	return scr, nil
}

func (f *fakeCatalog) SeatsByRoom(_ context.Context, roomID uint64) ([]model.Seat, error) {
	return f.seats[roomID], nil
}

type fakeStore struct {
	occupied     map[uint64][]uint64
	reservations map[uint64]*model.Reservation
}

func (f *fakeStore) OccupiedSeatIDs(_ context.Context, screeningID uint64) ([]uint64, error) {
	return f.occupied[screeningID], nil
}

func (f *fakeStore) CreateReservation(_ context.Context, res *model.Reservation) error {
	res.ID = uint64(len(f.reservations) + 100)
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeStore) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeStore) ListReservations(_ context.Context) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) ListReservationsByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteReservation(_ context.Context, id uint64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservation.ErrReservationNotFound
	}
	delete(f.reservations, id)
	return nil
}

func newBookingHandler() *ReservationHandler {
	catalog := &fakeCatalog{
		screenings: map[uint64]*model.Screening{
			1: {ID: 1, FilmID: 1, RoomID: 1, Price: decimal.RequireFromString("10.00")},
		},
		seats: map[uint64][]model.Seat{
			1: {
				{ID: 1, RoomID: 1, Row: 1, Column: 1},
				{ID: 2, RoomID: 1, Row: 1, Column: 2},
				{ID: 3, RoomID: 1, Row: 2, Column: 1},
				{ID: 4, RoomID: 1, Row: 2, Column: 2},
			},
		},
	}
	store := &fakeStore{
		occupied: map[uint64][]uint64{1: {2}},
		reservations: map[uint64]*model.Reservation{
			7: {ID: 7, UserID: 2, ScreeningID: 1, Seats: []model.Seat{{ID: 2, RoomID: 1, Row: 1, Column: 2}}},
		},
	}
	return NewReservationHandler(
		reservation.NewAllocator(catalog, store),
		reservation.NewAccess(store),
		nil, nil, nil,
	)
}

// request builds an echo context for a handler call.  A zero uid leaves
// the context unauthenticated.
func request(method, target, body string, uid uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != 0 {
		c.Set("user_id", uid)
		c.Set("role", role)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// seatIDsFrom extracts the seat_ids array from an error response.
func seatIDsFrom(t *testing.T, body map[string]interface{}) []uint64 {
	t.Helper()
	raw, ok := body["seat_ids"].([]interface{})
	require.True(t, ok, "response carries no seat_ids: %v", body)
	ids := make([]uint64, 0, len(raw))
	for _, v := range raw {
		ids = append(ids, uint64(v.(float64)))
	}
	return ids
}

func TestCreateReservationUnauthenticated(t *testing.T) {
	h := newBookingHandler()
	c, rec := request(http.MethodPost, "/v1/reservations", `{"screening_id":1,"seat_ids":[1]}`, 0, "")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReservationUnknownScreening(t *testing.T) {
	h := newBookingHandler()
	c, rec := request(http.MethodPost, "/v1/reservations", `{"screening_id":42,"seat_ids":[1]}`, 1, reservation.RoleCustomer)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservationInvalidSeats(t *testing.T) {
	h := newBookingHandler()
	// Seat 99 does not exist in room 1.
	c, rec := request(http.MethodPost, "/v1/reservations", `{"screening_id":1,"seat_ids":[1,99]}`, 1, reservation.RoleCustomer)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []uint64{99}, seatIDsFrom(t, decodeBody(t, rec)))
}

func TestCreateReservationSeatsBooked(t *testing.T) {
	h := newBookingHandler()
	// Seat 2 is occupied through reservation 7.
	c, rec := request(http.MethodPost, "/v1/reservations", `{"screening_id":1,"seat_ids":[2,3]}`, 1, reservation.RoleCustomer)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []uint64{2}, seatIDsFrom(t, decodeBody(t, rec)))
}

func TestGetReservationForbiddenForOtherUser(t *testing.T) {
	h := newBookingHandler()
	c, rec := request(http.MethodGet, "/v1/reservations/7", "", 1, reservation.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetReservationNotFound(t *testing.T) {
	h := newBookingHandler()
	c, rec := request(http.MethodGet, "/v1/reservations/999", "", 1, reservation.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("999")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteReservationCustomerForbidden(t *testing.T) {
	h := newBookingHandler()
	// Even the owner cannot delete without the admin role.
	c, rec := request(http.MethodDelete, "/v1/reservations/7", "", 2, reservation.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListReservationsScopedToCaller(t *testing.T) {
	h := newBookingHandler()
	c, rec := request(http.MethodGet, "/v1/reservations", "", 1, reservation.RoleCustomer)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decodeBody(t, rec)["items"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, items, "user 1 owns no reservations")
}
