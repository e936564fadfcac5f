package invoice

import (
	"time"

	"github.com/zombor/chat-invoice/internal/extraction"
)

// Invoice represents a generated invoice with its billing breakdown
type Invoice struct {
	Number        string                  `json:"number"`
	Date          string                  `json:"date"`
	CustomerName  string                  `json:"customer_name"`
	CustomerPhone string                  `json:"customer_phone,omitempty"`
	CustomerEmail string                  `json:"customer_email,omitempty"`
	UPIID         string                  `json:"upi_id"`
	PayeeName     string                  `json:"payee_name"`
	Business      BusinessProfile         `json:"business"`
	Items         []extraction.LineItem   `json:"items"`
	Totals        Totals                  `json:"totals"`
	Filename      string                  `json:"filename"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// BusinessProfile holds the merchant identity printed on invoices
type BusinessProfile struct {
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	BusinessPhone   string `json:"business_phone"`
	BusinessEmail   string `json:"business_email"`
	BusinessGST     string `json:"business_gst"`
	DefaultUPIID    string `json:"default_upi_id"`
	PayeeName       string `json:"payee_name"`
}

// DefaultProfile returns the profile used until the merchant saves one
func DefaultProfile() BusinessProfile {
	return BusinessProfile{
		BusinessName:    "Your Business Name",
		BusinessAddress: "123 Business Street, City, State - 123456",
		BusinessPhone:   "+91-1234567890",
		BusinessEmail:   "info@yourbusiness.com",
		BusinessGST:     "22AAAAA0000A1Z5",
		DefaultUPIID:    "merchant@upi",
		PayeeName:       "Your Business Name",
	}
}

// Notification is one entry in the in-process notification log
type Notification struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	Time     string  `json:"time"`
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Filename string  `json:"filename"`
}
