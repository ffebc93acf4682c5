package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	a, err := GenerateNonce(16)
	require.NoError(t, err)
	b, err := GenerateNonce(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestState(t *testing.T) {
	now := time.Now()
	state, err := SignState("google", "secret", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(state, "google."))

	assert.NoError(t, VerifyState(state, "google", "secret", now, 10*time.Minute))
	assert.Error(t, VerifyState(state, "google", "other-secret", now, 10*time.Minute))
	assert.Error(t, VerifyState(state, "github", "secret", now, 10*time.Minute))
	assert.Error(t, VerifyState("garbage", "google", "secret", now, 10*time.Minute))

	tampered := state[:len(state)-1] + "0"
	if tampered == state {
		tampered = state[:len(state)-1] + "1"
	}
	assert.Error(t, VerifyState(tampered, "google", "secret", now, 10*time.Minute))
}

func TestState_Expiry(t *testing.T) {
	issued := time.Now()
	state, err := SignState("google", "secret", issued)
	require.NoError(t, err)

	assert.NoError(t, VerifyState(state, "google", "secret", issued.Add(9*time.Minute), 10*time.Minute))
	assert.Error(t, VerifyState(state, "google", "secret", issued.Add(11*time.Minute), 10*time.Minute))
	assert.Error(t, VerifyState(state, "google", "secret", issued.Add(-time.Hour), 10*time.Minute))

	// the issue time is covered by the signature
	parts := strings.Split(state, ".")
	parts[2] = "9999999999"
	assert.Error(t, VerifyState(strings.Join(parts, "."), "google", "secret", issued, 10*time.Minute))
}

func TestSameState(t *testing.T) {
	assert.True(t, SameState("abc", "abc"))
	assert.False(t, SameState("abc", "abd"))
	assert.False(t, SameState("", ""))
}
