package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zombor/chat-invoice/internal/extraction"
)

// invoiceNumberPrefix prefixes every formatted invoice number
const invoiceNumberPrefix = "INV"

// ErrNoItems is returned when nothing billable could be extracted from the
// request. It is the only extraction condition reported as a user-facing
// failure.
var ErrNoItems = errors.New("no items could be extracted")

// ChatParser converts a chat transcript into deduplicated line items
type ChatParser interface {
	ParseChats(ctx context.Context, messages []string) []extraction.LineItem
}

// QRGenerator produces a base64-encoded payment QR image
type QRGenerator interface {
	PaymentQR(upiID, payeeName string, amount float64, invoiceNumber string) (string, error)
}

// Renderer produces the invoice document bytes
type Renderer interface {
	RenderInvoice(invoice *Invoice, qrBase64 string) ([]byte, error)
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles invoice operations
type Service struct {
	db            DB
	parser        ChatParser
	storage       Storage
	qr            QRGenerator
	renderer      Renderer
	notifications *NotificationLog
	taxRate       float64
	timeSource    TimeSource
}

// NewService creates a new Service with the default time source
func NewService(db DB, parser ChatParser, storage Storage, qr QRGenerator, renderer Renderer, notifications *NotificationLog, taxRate float64) *Service {
	return &Service{
		db:            db,
		parser:        parser,
		storage:       storage,
		qr:            qr,
		renderer:      renderer,
		notifications: notifications,
		taxRate:       taxRate,
		timeSource:    &defaultTimeSource{},
	}
}

// NewServiceWithTimeSource creates a new Service with a custom time source for testing
func NewServiceWithTimeSource(db DB, parser ChatParser, storage Storage, qr QRGenerator, renderer Renderer, notifications *NotificationLog, taxRate float64, timeSource TimeSource) *Service {
	s := NewService(db, parser, storage, qr, renderer, notifications, taxRate)
	s.timeSource = timeSource
	return s
}

// GenerateRequest carries everything needed to build an invoice from chats
type GenerateRequest struct {
	Chats         []string `json:"chats"`
	UPIID         string   `json:"upi_id"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	CustomerEmail string   `json:"customer_email"`
	PayeeName     string   `json:"payee_name"`
}

// DirectRequest carries caller-provided items, bypassing AI extraction
type DirectRequest struct {
	Items         []extraction.RawItem `json:"items"`
	UPIID         string               `json:"upi_id"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	CustomerEmail string               `json:"customer_email"`
	PayeeName     string               `json:"payee_name"`
}

// ParseOnly runs the extraction pipeline without generating a document.
// Useful for debugging chat parsing.
func (s *Service) ParseOnly(ctx context.Context, chats []string) ([]extraction.LineItem, Totals) {
	items := s.parser.ParseChats(ctx, chats)
	return items, ComputeTotals(items, s.taxRate)
}

// GenerateInvoice extracts line items from chat messages and renders a
// payable invoice document
func (s *Service) GenerateInvoice(ctx context.Context, req GenerateRequest) (*Invoice, []byte, error) {
	items := s.parser.ParseChats(ctx, req.Chats)
	if len(items) == 0 {
		return nil, nil, ErrNoItems
	}
	return s.buildInvoice(items, req.UPIID, req.CustomerName, req.CustomerPhone, req.CustomerEmail, req.PayeeName)
}

// GenerateDirect renders an invoice from caller-provided items, with the
// same normalization and dedup applied as the chat path
func (s *Service) GenerateDirect(ctx context.Context, req DirectRequest) (*Invoice, []byte, error) {
	items := extraction.Dedupe(req.Items)
	if len(items) == 0 {
		return nil, nil, ErrNoItems
	}
	return s.buildInvoice(items, req.UPIID, req.CustomerName, req.CustomerPhone, req.CustomerEmail, req.PayeeName)
}

func (s *Service) buildInvoice(items []extraction.LineItem, upiID, customerName, customerPhone, customerEmail, payeeName string) (*Invoice, []byte, error) {
	totals := ComputeTotals(items, s.taxRate)

	number, err := s.db.NextInvoiceNumber()
	if err != nil {
		return nil, nil, fmt.Errorf("getting invoice number: %w", err)
	}
	formattedNumber := fmt.Sprintf("%s-%04d", invoiceNumberPrefix, number)

	profile, err := s.GetProfile()
	if err != nil {
		return nil, nil, fmt.Errorf("loading profile: %w", err)
	}

	if upiID == "" {
		upiID = profile.DefaultUPIID
	}
	if payeeName == "" {
		payeeName = profile.PayeeName
	}
	if payeeName == "" {
		payeeName = profile.BusinessName
	}

	now := s.timeSource.Now()
	invoice := &Invoice{
		Number:        formattedNumber,
		Date:          now.Format("02 Jan 2006"),
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		CustomerEmail: customerEmail,
		UPIID:         upiID,
		PayeeName:     payeeName,
		Business:      profile,
		Items:         items,
		Totals:        totals,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	qrBase64, err := s.qr.PaymentQR(upiID, payeeName, totals.GrandTotal, formattedNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("generating payment qr: %w", err)
	}

	pdf, err := s.renderer.RenderInvoice(invoice, qrBase64)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering invoice: %w", err)
	}

	filename := fmt.Sprintf("invoice_%s.pdf", formattedNumber)
	savedPath, err := s.storage.Save(filename, pdf)
	if err != nil {
		return nil, nil, fmt.Errorf("saving invoice file: %w", err)
	}
	invoice.Filename = savedPath

	if err := s.db.SaveInvoice(invoice); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, nil, fmt.Errorf("saving invoice to database: %w", err)
	}

	s.notifications.Append(Notification{
		ID:       fmt.Sprintf("inv-%d", number),
		Title:    "New Invoice Generated",
		Message:  fmt.Sprintf("Invoice %s for %s is ready.", formattedNumber, customerName),
		Time:     now.Format("15:04"),
		Customer: customerName,
		Amount:   totals.GrandTotal,
		Filename: savedPath,
	})

	slog.Info("Invoice generated", "number", formattedNumber, "customer", customerName, "total", totals.GrandTotal)

	return invoice, pdf, nil
}

// GetInvoice retrieves an invoice by number
func (s *Service) GetInvoice(number string) (*Invoice, error) {
	invoice, err := s.db.GetInvoice(number)
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return invoice, nil
}

// ListInvoices returns all invoices
func (s *Service) ListInvoices() ([]*Invoice, error) {
	invoices, err := s.db.ListInvoices()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice and its rendered document
func (s *Service) DeleteInvoice(number string) error {
	invoice, err := s.db.GetInvoice(number)
	if err != nil {
		return fmt.Errorf("getting invoice for deletion: %w", err)
	}

	if err := s.storage.Delete(invoice.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", invoice.Filename, "error", err)
	}

	if err := s.db.DeleteInvoice(number); err != nil {
		return fmt.Errorf("deleting invoice from database: %w", err)
	}
	return nil
}

// GetInvoiceFile retrieves the rendered document for an invoice
func (s *Service) GetInvoiceFile(number string) ([]byte, string, error) {
	invoice, err := s.db.GetInvoice(number)
	if err != nil {
		return nil, "", fmt.Errorf("getting invoice: %w", err)
	}

	data, err := s.storage.Get(invoice.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting invoice file: %w", err)
	}

	return data, invoice.Filename, nil
}

// GetProfile returns the saved business profile, or the defaults when the
// merchant has not saved one yet
func (s *Service) GetProfile() (BusinessProfile, error) {
	profile, err := s.db.GetProfile()
	if err != nil {
		return BusinessProfile{}, err
	}
	if profile == nil {
		return DefaultProfile(), nil
	}
	return *profile, nil
}

// UpdateProfile saves the business profile
func (s *Service) UpdateProfile(profile BusinessProfile) error {
	if err := s.db.SaveProfile(&profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Notifications returns the notification log entries
func (s *Service) Notifications() []Notification {
	return s.notifications.List()
}

// ClearNotifications resets the notification log
func (s *Service) ClearNotifications() {
	s.notifications.Reset()
}
