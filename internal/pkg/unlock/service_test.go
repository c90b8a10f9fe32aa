package unlock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_IssueAndUnlock(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	key := ReadingKey("John Smith", time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC))

	tok, err := svc.Issue(key, "order_1", "pay_1")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)

	claims, err := svc.Validate(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, key, claims.ReadingKey)
	assert.Equal(t, "order_1", claims.OrderID)

	ok, err := svc.Unlocks(tok.Value, key)
	require.NoError(t, err)
	assert.True(t, ok)

	other := ReadingKey("Jane Smith", time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC))
	ok, err = svc.Unlocks(tok.Value, other)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrTokenMismatch))
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	tok, err := svc.Issue("k", "order", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = svc.Validate(tok.Value)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", time.Hour).Issue("k", "o", "")
	require.NoError(t, err)

	_, err = NewHMACService("b", time.Hour).Validate(tok.Value)
	assert.True(t, errors.Is(err, ErrTokenInvalid))

	_, err = NewHMACService("a", time.Hour).Validate("not-a-token")
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestHMACService_IssueRequiresConfig(t *testing.T) {
	_, err := NewHMACService("", time.Hour).Issue("k", "o", "")
	assert.True(t, errors.Is(err, ErrTokenInvalid))
	_, err = NewHMACService("s", time.Hour).Issue("", "o", "")
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestReadingKey_Normalises(t *testing.T) {
	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ReadingKey("John Smith", dob), ReadingKey("  john   SMITH ", dob))
	assert.NotEqual(t, ReadingKey("John Smith", dob), ReadingKey("John Smith", dob.AddDate(0, 0, 1)))
	assert.Len(t, ReadingKey("x", dob), 64)
}
