package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanewise/freight_tms_app/internal/utils"
)

func TestGenerateReferenceSuffix_Length(t *testing.T) {
	suffix, err := utils.GenerateReferenceSuffix(8)
	require.NoError(t, err)
	assert.Len(t, suffix, 8)
}

func TestGenerateReferenceSuffix_Charset(t *testing.T) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for i := 0; i < 100; i++ {
		suffix, err := utils.GenerateReferenceSuffix(8)
		require.NoError(t, err)
		for _, r := range suffix {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in suffix %s", r, suffix)
		}
	}
}

func TestGenerateReferenceSuffix_NoCollisionsAcrossManyDraws(t *testing.T) {
	// 36^8 possible suffixes make a collision within a thousand draws
	// vanishingly unlikely; a duplicate here means the generator is broken.
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		suffix, err := utils.GenerateReferenceSuffix(8)
		require.NoError(t, err)
		_, dup := seen[suffix]
		require.False(t, dup, "duplicate suffix %s after %d draws", suffix, i)
		seen[suffix] = struct{}{}
	}
}

func TestGenerateReferenceSuffix_RejectsNonPositiveLength(t *testing.T) {
	_, err := utils.GenerateReferenceSuffix(0)
	assert.Error(t, err)
}

func TestGenerateSecureRandomString_HexEncodesRequestedBytes(t *testing.T) {
	s, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s, 64)
}
