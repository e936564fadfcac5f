package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// corsErrorJSON writes a JSON error body with CORS headers set
func corsErrorJSON(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writePDF sends a rendered invoice as a file attachment
func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := w.Write(data); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// handleGenerateInvoice builds an invoice from chat messages
func (s *Server) handleGenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsErrorJSON(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Chats) == 0 {
		corsErrorJSON(w, "Missing chats field", http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" {
		corsErrorJSON(w, "customer_name is required", http.StatusBadRequest)
		return
	}

	invoice, pdf, err := s.service.GenerateInvoice(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoItems) {
			corsErrorJSON(w, "No items found in chat messages", http.StatusBadRequest)
			return
		}
		slog.Error("Error generating invoice", "error", err)
		corsErrorJSON(w, "Failed to generate invoice", http.StatusInternalServerError)
		return
	}

	writePDF(w, invoice.Filename, pdf)
}

// handleGenerateDirect builds an invoice from caller-provided items
func (s *Server) handleGenerateDirect(w http.ResponseWriter, r *http.Request) {
	var req DirectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsErrorJSON(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		corsErrorJSON(w, "No items provided", http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" {
		corsErrorJSON(w, "customer_name is required", http.StatusBadRequest)
		return
	}

	invoice, pdf, err := s.service.GenerateDirect(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoItems) {
			corsErrorJSON(w, "No valid items provided", http.StatusBadRequest)
			return
		}
		slog.Error("Error generating invoice", "error", err)
		corsErrorJSON(w, "Failed to generate invoice", http.StatusInternalServerError)
		return
	}

	writePDF(w, invoice.Filename, pdf)
}

// handleParse runs extraction without generating a document
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Chats []string `json:"chats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsErrorJSON(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Chats) == 0 {
		corsErrorJSON(w, "Missing chats field", http.StatusBadRequest)
		return
	}

	items, totals := s.service.ParseOnly(r.Context(), req.Chats)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"items":  items,
		"totals": totals,
	}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListInvoices returns a list of all invoices
func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.service.ListInvoices()
	if err != nil {
		slog.Error("Error listing invoices", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Ensure we always return an array, not nil
	if invoices == nil {
		invoices = []*Invoice{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(invoices); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetInvoice returns a single invoice
func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		corsError(w, "Invoice number required", http.StatusBadRequest)
		return
	}
	invoice, err := s.service.GetInvoice(number)
	if err != nil {
		corsError(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(invoice); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetInvoiceFile returns the rendered document for an invoice
func (s *Server) handleGetInvoiceFile(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		corsError(w, "Invoice number required", http.StatusBadRequest)
		return
	}
	data, filename, err := s.service.GetInvoiceFile(number)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	writePDF(w, filename, data)
}

// handleDeleteInvoice deletes an invoice
func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		corsError(w, "Invoice number required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteInvoice(number); err != nil {
		corsError(w, "Error deleting invoice", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetProfile returns the business profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.service.GetProfile()
	if err != nil {
		slog.Error("Error loading profile", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUpdateProfile saves the business profile
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		corsErrorJSON(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.service.UpdateProfile(profile); err != nil {
		slog.Error("Error saving profile", "error", err)
		corsErrorJSON(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "success",
	})
}

// handleListNotifications returns the notification log
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := s.service.Notifications()
	if notifications == nil {
		notifications = []Notification{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(notifications); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleClearNotifications resets the notification log
func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	s.service.ClearNotifications()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "success",
	})
}

// handleHealth reports service health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "chat-invoice",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
