package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/templates"
)

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// Fail records err for ErrorHandler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last recorded error as JSON or as the HTML
// error page. 5xx are logged at error level, the rest at warn.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		level := slog.LevelWarn
		if status >= 500 {
			level = slog.LevelError
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if WantsJSON(c) {
			payload := gin.H{
				"error":      publicMsg,
				"request_id": rid,
			}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}

		c.Abort()
		c.Status(status)
		c.Header("Content-Type", "text/html; charset=utf-8")
		data := shellData(c, "")
		data.Status = status
		data.Message = publicMsg
		if err := templates.Render(c.Writer, "error", data); err != nil {
			l.ErrorContext(c.Request.Context(), "error_page_render_failed", slog.Any("err", err))
		}
	}
}

// shellData fills the layout fields shared by every HTML page.
func shellData(c *gin.Context, page string) templates.Shell {
	sess := CurrentSession(c)
	return templates.Shell{
		Page:      page,
		Flash:     GetFlash(c),
		Username:  sess.Username(),
		IsStaff:   sess.IsStaff(),
		ShowPopup: ShowPopup(c),
		RequestID: GetRequestID(c),
	}
}

// ShellData is shellData for handlers outside this package.
func ShellData(c *gin.Context, page, title string) templates.Shell {
	d := shellData(c, page)
	d.Title = title
	return d
}
