// Package hmacsig signs cookie payloads with HMAC-SHA256.
package hmacsig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

func Sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func Verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(Sign(secret, payload)), []byte(sig))
}

// Seal returns "payload.sig".
func Seal(secret []byte, payload string) string {
	return payload + "." + Sign(secret, payload)
}

// Open splits and verifies a sealed value. payload must not contain ".".
func Open(secret []byte, v string) (string, bool) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || payload == "" || strings.Contains(sig, ".") {
		return "", false
	}
	if !Verify(secret, payload, sig) {
		return "", false
	}
	return payload, true
}
