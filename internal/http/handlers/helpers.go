package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const msgBadID = "Mã định danh không hợp lệ."

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// pageParams reads ?page (0-based, as the backend expects) and ?size.
func pageParams(c *gin.Context, defSize int) (int, int) {
	page := parseInt(c.Query("page"), 0)
	if page < 0 {
		page = 0
	}
	size := parseInt(c.Query("size"), defSize)
	if size <= 0 || size > 100 {
		size = defSize
	}
	return page, size
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.Fail(c, apperr.InvalidErr(msgBadID, nil))
		return 0, false
	}
	return id, true
}

// sess is only called behind RequireAuth, so it is never nil there.
func sess(c *gin.Context) *session.Session { return middleware.CurrentSession(c) }
