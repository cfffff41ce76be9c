package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveluxe/car_rental_backend/internal/utils"
)

func TestGenerateReferenceCode_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 8, 12} {
		code, err := utils.GenerateReferenceCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r),
				"unexpected character %q in %q", r, code)
		}
	}
}

func TestGenerateReferenceCode_InvalidLength(t *testing.T) {
	_, err := utils.GenerateReferenceCode(0)
	assert.Error(t, err)

	_, err = utils.GenerateReferenceCode(-3)
	assert.Error(t, err)
}

func TestGenerateReferenceCode_Distinct(t *testing.T) {
	// 100000 draws from the 36^8 space. The birthday bound puts the expected
	// number of collisions near 0.002, so anything beyond a couple of
	// duplicates means the generator is biased.
	const draws = 100000
	seen := make(map[string]struct{}, draws)
	collisions := 0
	for i := 0; i < draws; i++ {
		code, err := utils.GenerateReferenceCode(8)
		require.NoError(t, err)
		if _, dup := seen[code]; dup {
			collisions++
		}
		seen[code] = struct{}{}
	}
	assert.LessOrEqual(t, collisions, 2, "too many duplicate codes in %d draws", draws)
}

func TestGenerateReferenceCode_DistinctAtFallbackLength(t *testing.T) {
	// At the widened 12-character length a single collision in 100000 draws
	// has probability around 1e-9, so any duplicate is a failure.
	const draws = 100000
	seen := make(map[string]struct{}, draws)
	for i := 0; i < draws; i++ {
		code, err := utils.GenerateReferenceCode(12)
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q after %d draws", code, i)
		seen[code] = struct{}{}
	}
}
