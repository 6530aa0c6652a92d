package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func last6(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-6:]
}

// GenerateReceiptID builds the gateway receipt reference for a checkout.
func GenerateReceiptID(userID, courseID uuid.UUID) string {
	return fmt.Sprintf("recpt_%s_%s_%d", last6(userID), last6(courseID), time.Now().UnixMilli())
}

// GenerateSkipOrderID builds the synthetic order id used by admin-granted
// enrollments that bypass the payment gateway.
func GenerateSkipOrderID(userID, courseID uuid.UUID) string {
	return fmt.Sprintf("ORD-%s-%s-%d", last6(userID), last6(courseID), time.Now().UnixMilli())
}

// GenerateOrderSecret returns the random per-order HMAC secret (32 bytes,
// hex encoded).
func GenerateOrderSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
