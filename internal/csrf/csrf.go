package csrf

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/hanzawa-dev/gobbs/internal/logger"
)

const TokenLength = 32 // bytes

// SessionKey is the session attribute the current token is stored under.
const SessionKey = "csrf_token"

// Session is the minimal per-user key-value association the guard needs.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// GenerateToken creates a cryptographically secure random token
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// Issue generates a fresh token and stores it in the session, overwriting any
// previous one. The returned token is embedded in the next rendered form.
func Issue(sess Session) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	sess.Set(SessionKey, token)
	return token, nil
}

// Validate compares the session token with the submitted form token.
// Mismatches are logged with both values for audit.
func Validate(sess Session, formToken string) bool {
	stored, ok := sess.Get(SessionKey)
	if !ok || !ValidateToken(stored, formToken) {
		logger.Log.Error("CSRF token check failed", "submitted", formToken, "stored", stored)
		return false
	}
	return true
}

// ValidateToken compares the stored token with the form token
func ValidateToken(storedToken, formToken string) bool {
	if storedToken == "" || formToken == "" {
		return false
	}
	return storedToken == formToken
}
