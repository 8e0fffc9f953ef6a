package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("x", nil), http.StatusBadRequest},
		{UnauthorizedErr("x"), http.StatusUnauthorized},
		{ForbiddenErr("x"), http.StatusForbidden},
		{NotFoundErr("x"), http.StatusNotFound},
		{ConflictErr("x"), http.StatusConflict},
		{UnavailableErr("x", nil), http.StatusBadGateway},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessageFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, "Mã không hợp lệ", PublicMessage(InvalidErr("Mã không hợp lệ", nil)))
	assert.Equal(t, GenericMsg, PublicMessage(errors.New("db down")))
	assert.Equal(t, GenericMsg, PublicMessage(&AppError{Kind: Invalid}))
}

func TestWrapKeepsExistingAppError(t *testing.T) {
	orig := NotFoundErr("Không tìm thấy")
	wrapped := fmt.Errorf("ctx: %w", orig)

	got := Wrap(wrapped)
	require.NotNil(t, got)
	assert.Same(t, orig, got)
	assert.Nil(t, Wrap(nil))
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, Invalid, FromStatus(http.StatusBadRequest))
	assert.Equal(t, Unauthorized, FromStatus(http.StatusUnauthorized))
	assert.Equal(t, NotFound, FromStatus(http.StatusNotFound))
	assert.Equal(t, Unavailable, FromStatus(http.StatusServiceUnavailable))
	assert.Equal(t, Internal, FromStatus(http.StatusInternalServerError))
	assert.True(t, IsKind(&AppError{Kind: Conflict}, Conflict))
}

func TestMessageOr(t *testing.T) {
	assert.Equal(t, "Voucher đã hết hạn", MessageOr(InvalidErr("Voucher đã hết hạn", nil), "Mã không hợp lệ"))
	assert.Equal(t, "Mã không hợp lệ", MessageOr(&AppError{Kind: Invalid}, "Mã không hợp lệ"))
	assert.Equal(t, "Mã không hợp lệ", MessageOr(Wrap(errors.New("x")), "Mã không hợp lệ"))
	assert.Equal(t, "fallback", MessageOr(errors.New("x"), "fallback"))
}
