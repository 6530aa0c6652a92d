package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	config "github.com/anjiri1684/course_academy/configs"
	"github.com/anjiri1684/course_academy/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// InvoiceModel is everything the invoice template needs: the customer
// snapshot, the monetary breakdown and the static company block.
type InvoiceModel struct {
	CustomerName   string
	CustomerEmail  string
	CustomerMobile string
	CustomerState  string

	CourseName string
	GstPercent float64

	InvoiceNumber    string
	TransactionID    string
	TransactionDate  string
	AmountWithoutGst float64
	Cgst             float64
	Sgst             float64
	Igst             float64
	TotalGst         float64
	TotalPaidAmount  float64

	CompanyName      string
	CompanyAddress   string
	CompanyState     string
	CompanyGstNumber string
	CompanyEmail     string
	CompanyHelpline  string
}

func BuildInvoiceModel(purchase models.Purchase, course models.Course) InvoiceModel {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	return InvoiceModel{
		CustomerName:     purchase.CustomerName,
		CustomerEmail:    purchase.CustomerEmail,
		CustomerMobile:   deref(purchase.CustomerMobile),
		CustomerState:    deref(purchase.CustomerState),
		CourseName:       course.Name,
		GstPercent:       course.GstPercent,
		InvoiceNumber:    deref(purchase.InvoiceNumber),
		TransactionID:    purchase.TransactionID,
		TransactionDate:  purchase.TransactionDate.Format("January 02 2006 03:04 PM"),
		AmountWithoutGst: purchase.AmountWithoutGst,
		Cgst:             purchase.Cgst,
		Sgst:             purchase.Sgst,
		Igst:             purchase.Igst,
		TotalGst:         purchase.TotalGst,
		TotalPaidAmount:  purchase.TotalPaidAmount,
		CompanyName:      config.Config("COMPANY_NAME"),
		CompanyAddress:   config.Config("COMPANY_ADDRESS"),
		CompanyState:     HomeState(),
		CompanyGstNumber: config.Config("COMPANY_GST_NUMBER"),
		CompanyEmail:     config.Config("COMPANY_EMAIL"),
		CompanyHelpline:  config.Config("COMPANY_HELPLINE"),
	}
}

// GenerateInvoicePDF renders the invoice template to a PDF on disk and returns
// its path. The caller owns the file and deletes it after dispatch.
func GenerateInvoicePDF(invoice InvoiceModel) (string, error) {
	if invoice.InvoiceNumber == "" {
		return "", fmt.Errorf("invalid invoice data: missing invoice number")
	}

	tmpl, err := template.ParseFiles("templates/invoice.html")
	if err != nil {
		return "", err
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, invoice); err != nil {
		return "", err
	}

	pdfBytes, err := generatePDFFromHTML(renderedHTML.String())
	if err != nil {
		return "", err
	}

	pdfPath := filepath.Join(os.TempDir(), fmt.Sprintf("invoice_%s.pdf", invoice.InvoiceNumber))
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return "", err
	}

	return pdfPath, nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

// ArchiveInvoicePDF uploads a copy of the rendered invoice before the local
// file is cleaned up. Best effort; the purchase stands regardless.
func ArchiveInvoicePDF(pdfPath, invoiceNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, f, uploader.UploadParams{
		PublicID:     fmt.Sprintf("invoices/%s", invoiceNumber),
		Folder:       "course_academy_invoices",
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
