package services

import (
	"math"

	config "github.com/anjiri1684/course_academy/configs"
)

// GstBreakdown splits a tax-inclusive gross price into its GST components.
// Cgst+Sgst+Igst always equals TotalGst, and AmountWithoutGst+TotalGst always
// equals TotalPaid, to the cent.
type GstBreakdown struct {
	AmountWithoutGst float64
	Cgst             float64
	Sgst             float64
	Igst             float64
	TotalGst         float64
	TotalPaid        float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeGst extracts GST from a tax-inclusive gross price. Customers in the
// company's home state get the CGST/SGST split, everyone else pays IGST.
func ComputeGst(gross, gstPercent float64, customerState string) GstBreakdown {
	netBase := gross * 100 / (100 + gstPercent)
	totalGst := round2(gross - netBase)
	amountWithoutGst := round2(gross - totalGst)

	b := GstBreakdown{
		AmountWithoutGst: amountWithoutGst,
		TotalGst:         totalGst,
		TotalPaid:        gross,
	}

	if customerState == HomeState() {
		b.Cgst = round2(totalGst / 2)
		b.Sgst = round2(totalGst - b.Cgst)
	} else {
		b.Igst = totalGst
	}
	return b
}

func HomeState() string {
	return config.ConfigOr("COMPANY_STATE", "Gujarat")
}
