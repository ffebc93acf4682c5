package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenerateNonce returns n random bytes hex encoded
func GenerateNonce(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateHMAC signs data with secret
func GenerateHMAC(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// SignState builds an OAuth state value "<provider>.<nonce>.<unix time>.<hmac>"
func SignState(provider, secret string, issuedAt time.Time) (string, error) {
	nonce, err := GenerateNonce(16)
	if err != nil {
		return "", err
	}
	payload := provider + "." + nonce + "." + strconv.FormatInt(issuedAt.Unix(), 10)
	return payload + "." + GenerateHMAC(payload, secret), nil
}

// VerifyState checks a state produced by SignState for provider and rejects
// states issued more than maxAge before now.
func VerifyState(state, provider, secret string, now time.Time, maxAge time.Duration) error {
	parts := strings.Split(state, ".")
	if len(parts) != 4 {
		return fmt.Errorf("malformed state")
	}
	if parts[0] != provider {
		return fmt.Errorf("state issued for provider %q", parts[0])
	}
	want := GenerateHMAC(strings.Join(parts[:3], "."), secret)
	if !hmac.Equal([]byte(want), []byte(parts[3])) {
		return fmt.Errorf("invalid state signature")
	}

	issued, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed state time")
	}
	age := now.Sub(time.Unix(issued, 0))
	if age > maxAge || age < -time.Minute {
		return fmt.Errorf("state expired")
	}
	return nil
}

// SameState compares two state values in constant time
func SameState(a, b string) bool {
	return a != "" && hmac.Equal([]byte(a), []byte(b))
}
