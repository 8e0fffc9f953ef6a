package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

func TestCascade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/p/":
			_, _ = w.Write([]byte(`[{"code":1,"name":"Thành phố Hà Nội"},{"code":79,"name":"Thành phố Hồ Chí Minh"}]`))
		case "/api/p/79":
			assert.Equal(t, "2", r.URL.Query().Get("depth"))
			_, _ = w.Write([]byte(`{"code":79,"name":"Thành phố Hồ Chí Minh","districts":[{"code":760,"name":"Quận 1"}]}`))
		case "/api/d/760":
			_, _ = w.Write([]byte(`{"code":760,"name":"Quận 1","wards":[{"code":26734,"name":"Phường Bến Nghé"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ctx := context.Background()

	provinces, err := c.Provinces(ctx)
	require.NoError(t, err)
	require.Len(t, provinces, 2)
	assert.Equal(t, 79, provinces[1].Code)

	districts, err := c.Districts(ctx, 79)
	require.NoError(t, err)
	require.Len(t, districts, 1)
	assert.Equal(t, "Quận 1", districts[0].Name)

	wards, err := c.Wards(ctx, 760)
	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, "Phường Bến Nghé", wards[0].Name)

	_, err = c.Wards(ctx, 1)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestUpstreamFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Provinces(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))
	assert.Equal(t, msgUnavailable, apperr.PublicMessage(err))
}
