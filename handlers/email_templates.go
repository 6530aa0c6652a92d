package handlers

import (
	"fmt"

	"github.com/anjiri1684/course_academy/models"
)

func enrollmentEmailBody(customerName, courseName string, purchase models.Purchase) string {
	invoiceNumber := ""
	if purchase.InvoiceNumber != nil {
		invoiceNumber = *purchase.InvoiceNumber
	}

	return fmt.Sprintf(`<h1>Enrollment Confirmed</h1>
<p>Dear %s,</p>
<p>Your purchase of the <b>%s</b> course has been processed successfully and your enrollment is now active.</p>
<h3>🔑 Enrollment Details</h3>
<ul>
  <li>Course Name: %s</li>
  <li>Purchase Date: %s</li>
  <li>Transaction ID: %s</li>
  <li>Total Amount Paid: ₹%.2f</li>
  <li>Invoice Number: %s</li>
</ul>
<p>Your invoice is attached to this email. Log in to your account and open the "My Courses" section to start learning right away.</p>
<p>If you have any questions our support team is happy to help.</p>
<p>Happy learning!</p>`,
		customerName,
		courseName,
		courseName,
		purchase.TransactionDate.Format("January 02, 2006 03:04 PM"),
		purchase.TransactionID,
		purchase.TotalPaidAmount,
		invoiceNumber,
	)
}

func refundEmailBody(customerName string, refundAmount float64, cancelBillNumber string) string {
	return fmt.Sprintf(`<h1>Refund Processed</h1>
<p>Dear %s,</p>
<p>Your refund of ₹%.2f has been processed successfully. The cancellation reference is <b>%s</b>.</p>
<p>Access to the course has been revoked. Thank you for your patience.</p>`,
		customerName, refundAmount, cancelBillNumber)
}
