package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "9b74c9897bac770ffc029102a200c5de"
	orderID := "order_LxKq8vJ2mN3pQr"
	paymentID := "pay_MzAb1cD2eF3gHi"

	good := signPayload(secret, orderID, paymentID)
	assert.True(t, VerifyRazorpaySignature(secret, orderID, paymentID, good))
}

func TestVerifyRazorpaySignatureRejectsTampering(t *testing.T) {
	secret := "9b74c9897bac770ffc029102a200c5de"
	orderID := "order_LxKq8vJ2mN3pQr"
	paymentID := "pay_MzAb1cD2eF3gHi"
	good := signPayload(secret, orderID, paymentID)

	assert.False(t, VerifyRazorpaySignature(secret, orderID, paymentID, "deadbeef"))
	assert.False(t, VerifyRazorpaySignature(secret, orderID, "pay_other", good))
	assert.False(t, VerifyRazorpaySignature("wrong-secret", orderID, paymentID, good))
	assert.False(t, VerifyRazorpaySignature(secret, orderID, paymentID, ""))
}
