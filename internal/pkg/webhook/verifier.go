package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	HeaderCallbackToken     = "x-callback-token"
	HeaderCallbackSignature = "x-callback-signature"
)

// Verifier authenticates payout rail callbacks
type Verifier struct {
	token string
}

func NewVerifier(token string) *Verifier {
	return &Verifier{token: strings.TrimSpace(token)}
}

// VerifyToken compares the x-callback-token header against the shared token
func (v *Verifier) VerifyToken(callbackToken string) bool {
	if v.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(callbackToken)), []byte(v.token)) == 1
}

// VerifySignature checks a hex HMAC-SHA256 of the raw body keyed by the shared token
func (v *Verifier) VerifySignature(payload []byte, signature string) bool {
	if v.token == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(v.token, payload)), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// Sign returns the hex HMAC-SHA256 of payload.
func Sign(token string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(token))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
