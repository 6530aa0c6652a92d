package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anjiri1684/course_academy/services"
)

// All Razorpay amounts are in minor currency units (paise).

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type RazorpayPayment struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
}

type RazorpayRefund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

const razorpayAPIBase = "https://api.razorpay.com/v1"

var httpClient = &http.Client{Timeout: 15 * time.Second}

func razorpayRequest(method, path string, payload interface{}, out interface{}) error {
	keyID, keySecret, err := services.RazorpayKeys()
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, razorpayAPIBase+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(keyID, keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("razorpay %s %s failed: %s", method, path, string(respBody))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateRazorpayOrder registers a new order with the gateway. amount is gross,
// in rupees; the wire format wants paise.
func CreateRazorpayOrder(amount float64, currency, receipt string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": currency,
		"receipt":  receipt,
	}

	var order RazorpayOrder
	if err := razorpayRequest("POST", "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func FetchRazorpayPayment(paymentID string) (*RazorpayPayment, error) {
	var payment RazorpayPayment
	if err := razorpayRequest("GET", fmt.Sprintf("/payments/%s", paymentID), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func CaptureRazorpayPayment(paymentID string, amountMinor int64) (*RazorpayPayment, error) {
	payload := map[string]interface{}{"amount": amountMinor}

	var payment RazorpayPayment
	if err := razorpayRequest("POST", fmt.Sprintf("/payments/%s/capture", paymentID), payload, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func RefundRazorpayPayment(paymentID string, amountMinor int64, notes map[string]string) (*RazorpayRefund, error) {
	payload := map[string]interface{}{
		"amount": amountMinor,
		"notes":  notes,
	}

	var refund RazorpayRefund
	if err := razorpayRequest("POST", fmt.Sprintf("/payments/%s/refund", paymentID), payload, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// VerifyRazorpaySignature checks the checkout callback signature:
// hex(HMAC-SHA256(secret, orderId + "|" + paymentId)).
func VerifyRazorpaySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
