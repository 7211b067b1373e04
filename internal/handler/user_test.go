package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// The role and input checks below run before any repository access, so
// the handler is constructed without a database.

func TestListUsersCustomerForbidden(t *testing.T) {
	h := NewUserHandler(config.Config{}, nil)
	c, rec := request(http.MethodGet, "/v1/users", "", 1, reservation.RoleCustomer)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserUnauthenticated(t *testing.T) {
	h := NewUserHandler(config.Config{}, nil)
	c, rec := request(http.MethodGet, "/v1/users/1", "", 0, "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserForbiddenForOtherUser(t *testing.T) {
	h := NewUserHandler(config.Config{}, nil)
	c, rec := request(http.MethodGet, "/v1/users/2", "", 1, reservation.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteUserCustomerForbidden(t *testing.T) {
	h := NewUserHandler(config.Config{}, nil)
	// Customers cannot delete accounts, not even their own.
	c, rec := request(http.MethodDelete, "/v1/users/1", "", 1, reservation.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdatePasswordMissingFields(t *testing.T) {
	h := NewUserHandler(config.Config{}, nil)
	c, rec := request(http.MethodPut, "/v1/users/password", `{"current_password":"old"}`, 1, reservation.RoleCustomer)

	require.NoError(t, h.UpdatePassword(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfileUnauthenticated(t *testing.T) {
	h := NewUserHandler(config.Config{}, nil)
	c, rec := request(http.MethodPut, "/v1/users/profile", `{"first_name":"Ada","last_name":"L"}`, 0, "")

	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
