package render

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/zombor/chat-invoice/internal/invoice"
)

// PDFRenderer renders invoices as PDF documents
type PDFRenderer struct {
	currencySymbol string
}

// NewPDFRenderer creates a PDFRenderer using the given currency symbol for
// money columns
func NewPDFRenderer(currencySymbol string) *PDFRenderer {
	if currencySymbol == "" {
		currencySymbol = "Rs."
	}
	return &PDFRenderer{currencySymbol: currencySymbol}
}

// RenderInvoice lays out the invoice document with an embedded payment QR
// and returns the PDF bytes
func (r *PDFRenderer) RenderInvoice(inv *invoice.Invoice, qrBase64 string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Business header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(130, 10, inv.Business.BusinessName)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(50, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(130, 5, inv.Business.BusinessAddress, "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 5, fmt.Sprintf("No: %s", inv.Number), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 5, fmt.Sprintf("%s | %s", inv.Business.BusinessPhone, inv.Business.BusinessEmail), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 5, fmt.Sprintf("Date: %s", inv.Date), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 5, fmt.Sprintf("GSTIN: %s", inv.Business.BusinessGST), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, inv.CustomerName, "", 1, "L", false, 0, "")
	if inv.CustomerPhone != "" {
		pdf.CellFormat(0, 5, inv.CustomerPhone, "", 1, "L", false, 0, "")
	}
	if inv.CustomerEmail != "" {
		pdf.CellFormat(0, 5, inv.CustomerEmail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		amount := float64(item.Quantity) * item.UnitPrice
		pdf.CellFormat(90, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, r.money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, r.money(amount), "1", 1, "R", false, 0, "")
	}

	// Totals block
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(115, 7, "", "", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, r.money(inv.Totals.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(115, 7, "", "", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("GST (%.0f%%)", inv.Totals.TaxPercent), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, r.money(inv.Totals.TaxAmount), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(115, 8, "", "", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, r.money(inv.Totals.GrandTotal), "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	// Payment block with embedded QR
	if qrBase64 != "" {
		qrPNG, err := base64.StdEncoding.DecodeString(qrBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding qr image: %w", err)
		}
		pdf.RegisterImageOptionsReader("payment-qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
		y := pdf.GetY()
		pdf.ImageOptions("payment-qr", 15, y, 40, 40, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetXY(60, y+8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Scan to Pay", "", 1, "L", false, 0, "")
		pdf.SetX(60)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("UPI: %s", inv.UPIID), "", 1, "L", false, 0, "")
		pdf.SetX(60)
		pdf.CellFormat(0, 5, fmt.Sprintf("Payee: %s", inv.PayeeName), "", 1, "L", false, 0, "")
		pdf.SetY(y + 46)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) money(amount float64) string {
	return fmt.Sprintf("%s %.2f", r.currencySymbol, amount)
}
