package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/geo"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

// GeoHandler proxies the cascading address selects of the checkout form.
type GeoHandler struct {
	Client *geo.Client
}

func NewGeoHandler(cl *geo.Client) *GeoHandler { return &GeoHandler{Client: cl} }

// GET /api/geo/provinces
func (h *GeoHandler) Provinces(c *gin.Context) {
	res, err := h.Client.Provinces(c.Request.Context())
	h.reply(c, res, err)
}

// GET /api/geo/provinces/:code/districts
func (h *GeoHandler) Districts(c *gin.Context) {
	code, ok := divisionCode(c)
	if !ok {
		return
	}
	res, err := h.Client.Districts(c.Request.Context(), code)
	h.reply(c, res, err)
}

// GET /api/geo/districts/:code/wards
func (h *GeoHandler) Wards(c *gin.Context) {
	code, ok := divisionCode(c)
	if !ok {
		return
	}
	res, err := h.Client.Wards(c.Request.Context(), code)
	h.reply(c, res, err)
}

func (h *GeoHandler) reply(c *gin.Context, res []geo.Division, err error) {
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if res == nil {
		res = []geo.Division{}
	}
	render.JSON(c, res)
}

func divisionCode(c *gin.Context) (int, bool) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code <= 0 {
		middleware.Fail(c, apperr.InvalidErr(msgBadID, nil))
		return 0, false
	}
	return code, true
}
