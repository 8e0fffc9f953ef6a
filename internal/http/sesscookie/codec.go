// Package sesscookie carries the session id in an HMAC-signed cookie.
package sesscookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/hmacsig"
)

var ErrInvalid = errors.New("invalid session cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

func New(secret []byte, name string, secure bool, maxAge time.Duration) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure, MaxAge: maxAge}
}

// Encode returns "id.base64(hmac(id))".
func (c *Codec) Encode(id string) string { return hmacsig.Seal(c.Secret, id) }

func (c *Codec) Decode(v string) (string, error) {
	id, ok := hmacsig.Open(c.Secret, v)
	if !ok {
		return "", ErrInvalid
	}
	return id, nil
}

// SessionID reads and verifies the cookie. A tampered cookie is cleared.
func (c *Codec) SessionID(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	id, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return id, true
}

func (c *Codec) Set(ctx *gin.Context, id string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(id), int(c.MaxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}
