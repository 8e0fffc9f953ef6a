package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
)

const ctxKeyShowPopup = "show_popup"

type popupStore interface {
	Anonymous(ctx context.Context) (*session.Session, error)
	SaveUI(ctx context.Context, s *session.Session) error
}

// PromoPopup marks the first page view of a session so the promo popup is
// shown once. Guests get an anonymous session to hold the flag; logout
// drops the session, so the popup comes back after it.
func PromoPopup(store popupStore, cookie *sesscookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess := CurrentSession(c)
		if sess == nil {
			s, err := store.Anonymous(ctx)
			if err != nil {
				logging.FromCtx(ctx).WarnContext(ctx, "anonymous_session_failed", slog.Any("err", err))
				c.Next()
				return
			}
			sess = s
			cookie.Set(c, sess.ID)
			SetSession(c, sess)
		}

		if !sess.UI.PopupShown {
			sess.UI.PopupShown = true
			if err := store.SaveUI(ctx, sess); err != nil {
				logging.FromCtx(ctx).WarnContext(ctx, "popup_flag_save_failed", slog.Any("err", err))
			}
			c.Set(ctxKeyShowPopup, true)
		}
		c.Next()
	}
}

func ShowPopup(c *gin.Context) bool { return c.GetBool(ctxKeyShowPopup) }
