package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.Fail(c, apperr.InvalidErr("Mã định danh không hợp lệ.", nil))
		return 0, false
	}
	return id, true
}

// staff is set by RequireStaff for every route in this package.
func staff(c *gin.Context) *session.Session { return middleware.CurrentSession(c) }
