package handler

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// errUnauthenticated signals that no usable identity was present in the
// request context; handlers translate it into a 401 response.
var errUnauthenticated = errors.New("unauthenticated")

// callerFrom builds the engine Caller from the identity that JWTAuth
// stored in the context.  The identity is always threaded explicitly
// into engine calls, never read from context below this point.
func callerFrom(c echo.Context) (reservation.Caller, error) {
    uid, ok := c.Get("user_id").(uint64)
    if !ok || uid == 0 {
        return reservation.Caller{}, errUnauthenticated
    }
    role, _ := c.Get("role").(string)
    return reservation.Caller{UserID: uid, Role: role}, nil
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}
