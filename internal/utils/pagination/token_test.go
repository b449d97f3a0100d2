package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	openedAt := time.Date(2024, 3, 9, 18, 45, 12, 123456789, time.UTC)
	token := EncodeToken(openedAt, "f2a7c0de-1111-4c3b-9d41-5a0f9d6a6e01")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, openedAt.Equal(decodedAt), "Timestamp should match after decode")
	assert.Equal(t, "f2a7c0de-1111-4c3b-9d41-5a0f9d6a6e01", decodedID)

	// Non-UTC timestamps round-trip to the same instant
	bogota := time.FixedZone("COT", -5*3600)
	local := time.Date(2024, 3, 9, 13, 45, 12, 0, bogota)
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-03-09T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-5, 20, 100))
	assert.Equal(t, 7, ClampLimit(7, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
}
