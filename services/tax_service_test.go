package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGstHomeState(t *testing.T) {
	b := ComputeGst(1180, 18, "Gujarat")

	assert.Equal(t, 180.00, b.TotalGst)
	assert.Equal(t, 1000.00, b.AmountWithoutGst)
	assert.Equal(t, 90.00, b.Cgst)
	assert.Equal(t, 90.00, b.Sgst)
	assert.Equal(t, 0.00, b.Igst)
	assert.Equal(t, 1180.00, b.TotalPaid)
}

func TestComputeGstOtherState(t *testing.T) {
	b := ComputeGst(1180, 18, "Maharashtra")

	assert.Equal(t, 180.00, b.TotalGst)
	assert.Equal(t, 0.00, b.Cgst)
	assert.Equal(t, 0.00, b.Sgst)
	assert.Equal(t, 180.00, b.Igst)
}

func TestComputeGstZeroRate(t *testing.T) {
	b := ComputeGst(500, 0, "Gujarat")

	assert.Equal(t, 0.00, b.TotalGst)
	assert.Equal(t, 500.00, b.AmountWithoutGst)
	assert.Equal(t, 500.00, b.TotalPaid)
}

// The breakdown must reconcile to the cent for any price, including ones
// where the naive split would leave a rounding remainder.
func TestComputeGstReconciles(t *testing.T) {
	cases := []struct {
		gross float64
		rate  float64
		state string
	}{
		{1180, 18, "Gujarat"},
		{999, 18, "Gujarat"},
		{1234.56, 12, "Kerala"},
		{101, 5, "Gujarat"},
		{4999, 28, "Delhi"},
		{1, 18, "Gujarat"},
	}

	for _, tc := range cases {
		b := ComputeGst(tc.gross, tc.rate, tc.state)

		assert.InDelta(t, b.TotalGst, b.Cgst+b.Sgst+b.Igst, 0.001,
			"gst components must sum to total for gross %.2f", tc.gross)
		assert.InDelta(t, b.TotalPaid, b.AmountWithoutGst+b.TotalGst, 0.001,
			"net plus gst must equal gross for gross %.2f", tc.gross)
	}
}
