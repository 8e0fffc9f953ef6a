package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
)

const ctxKeySession = "session"

type sessionLoader interface {
	Load(ctx context.Context, id string) (*session.Session, error)
}

// SessionMiddleware resolves the cookie to a session before any guard
// runs. Unknown or expired ids clear the cookie; a storage outage is
// logged and the request continues as a guest.
func SessionMiddleware(store sessionLoader, cookie *sesscookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cookie.SessionID(c)
		if !ok {
			c.Next()
			return
		}

		sess, err := store.Load(c.Request.Context(), id)
		switch {
		case err == nil:
			SetSession(c, sess)
		case errors.Is(err, session.ErrNotFound):
			cookie.Clear(c)
		default:
			logging.FromCtx(c.Request.Context()).WarnContext(c.Request.Context(), "session_load_failed", slog.Any("err", err))
		}
		c.Next()
	}
}

func SetSession(c *gin.Context, s *session.Session) {
	c.Set(ctxKeySession, s)
}

// CurrentSession returns nil for guests; every *session.Session method is
// nil-safe.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
