package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanewise/freight_tms_app/internal/utils/pagination"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	sortDate := time.Date(2026, 5, 17, 14, 30, 45, 123456789, time.UTC)
	createdAt := time.Date(2026, 5, 17, 14, 30, 45, 987654321, time.UTC)

	token := pagination.EncodeToken(sortDate, createdAt)
	require.NotEmpty(t, token)

	gotSort, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, sortDate.Equal(gotSort))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-valid-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2026-05-17T14:30:45Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|tomorrow"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestEncodeDecodeDateBasedToken_RoundTrip(t *testing.T) {
	date := time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC)

	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)

	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}

func TestDecodeDateBasedToken_Invalid(t *testing.T) {
	_, err := pagination.DecodeDateBasedToken("%%%")
	assert.Error(t, err)

	garbage := base64.StdEncoding.EncodeToString([]byte("not a date"))
	_, err = pagination.DecodeDateBasedToken(garbage)
	assert.Error(t, err)
}
