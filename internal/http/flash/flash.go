package flash

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/hmacsig"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure}
}

// Encode returns "base64(json).base64(hmac)".
func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return hmacsig.Seal(c.Secret, base64.RawURLEncoding.EncodeToString(b)), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, ok := hmacsig.Open(c.Secret, v)
	if !ok {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	return &f, nil
}

// CookieMaxAge only needs to outlive one redirect.
func (c *Codec) CookieMaxAge() int {
	return int((2 * time.Minute).Seconds())
}
