package utils

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptID(t *testing.T) {
	userID := uuid.MustParse("6f1c2a9e-0b7d-4c1a-8f3e-1a2b3c4d5e6f")
	courseID := uuid.MustParse("0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9")

	receipt := GenerateReceiptID(userID, courseID)

	assert.Regexp(t, regexp.MustCompile(`^recpt_4d5e6f_d7e8f9_\d+$`), receipt)
}

func TestGenerateSkipOrderID(t *testing.T) {
	userID := uuid.MustParse("6f1c2a9e-0b7d-4c1a-8f3e-1a2b3c4d5e6f")
	courseID := uuid.MustParse("0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9")

	orderID := GenerateSkipOrderID(userID, courseID)

	assert.Regexp(t, regexp.MustCompile(`^ORD-4d5e6f-d7e8f9-\d+$`), orderID)
}

func TestGenerateOrderSecret(t *testing.T) {
	first, err := GenerateOrderSecret()
	require.NoError(t, err)

	second, err := GenerateOrderSecret()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), first)
	assert.NotEqual(t, first, second)
}
