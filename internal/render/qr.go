package render

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the pixel size of the generated QR image
const qrImageSize = 256

// UPIQR generates UPI payment QR codes
type UPIQR struct{}

// NewUPIQR creates a new UPIQR generator
func NewUPIQR() *UPIQR {
	return &UPIQR{}
}

// PaymentQR encodes a UPI payment URI as a PNG QR code and returns it
// base64-encoded for embedding
func (q *UPIQR) PaymentQR(upiID, payeeName string, amount float64, invoiceNumber string) (string, error) {
	uri := buildUPIURI(upiID, payeeName, amount, invoiceNumber)

	png, err := qrcode.Encode(uri, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("encoding qr code: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}

// buildUPIURI builds a upi://pay deep link for the given payment
func buildUPIURI(upiID, payeeName string, amount float64, invoiceNumber string) string {
	params := url.Values{}
	params.Set("pa", upiID)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", fmt.Sprintf("Invoice %s", invoiceNumber))
	return "upi://pay?" + params.Encode()
}
