package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
)

// UserFromToken builds a minimal user out of the token payload without
// verifying the signature; the backend verifies the token on every call.
// The result never has an ID.
func UserFromToken(token string) (*backend.User, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	username := claimString(claims, "username")
	if username == "" {
		username, _ = claims.GetSubject()
	}
	if username == "" {
		return nil, false
	}
	return &backend.User{
		Username: username,
		Email:    claimString(claims, "email"),
		Role:     claimRole(claims),
	}, true
}

func claimString(c jwt.MapClaims, key string) string {
	s, _ := c[key].(string)
	return s
}

// claimRole accepts "role": "ADMIN", "roles": ["ADMIN"] and
// "authorities": [{"authority": "ROLE_ADMIN"}].
func claimRole(c jwt.MapClaims) string {
	if r := claimString(c, "role"); r != "" {
		return NormalizeRole(r)
	}
	for _, key := range []string{"roles", "authorities"} {
		list, _ := c[key].([]any)
		for _, item := range list {
			switch v := item.(type) {
			case string:
				return NormalizeRole(v)
			case map[string]any:
				if a, _ := v["authority"].(string); a != "" {
					return NormalizeRole(a)
				}
			}
		}
	}
	return ""
}
