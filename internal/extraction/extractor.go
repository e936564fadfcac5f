package extraction

import "context"

// RawItem is a single extracted line item as returned by an extraction
// backend, before normalization and deduplication
type RawItem struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// LineItem is a normalized, deduplicated billing line
type LineItem struct {
	Name      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// Extractor defines the interface for chat extraction backends
type Extractor interface {
	// ExtractItems analyzes a chat transcript and extracts purchase line items
	ExtractItems(ctx context.Context, messages []string) ([]RawItem, error)
	// Close closes the extractor and releases resources
	Close() error
}

// extractionPrompt is the shared system instruction used by all LLM providers
// for extracting line items from chat transcripts
const extractionPrompt = `You are a logistics assistant. Extract items, quantities, and unit prices from the chat messages below.

Rules:
1. If a quantity is missing, use 1.
2. If the same item is mentioned in multiple messages, consolidate it into one entry with the summed quantity.
3. If a later message indicates the order replaces an earlier one, reflect only the latest intent.
4. Never merge distinct products into one entry.
5. If a total price is stated for a quantity of one item, divide it to get the unit price.
6. If a single total covers multiple different items, distribute it proportionally across them.
7. Ignore conversational filler; only extract actual orders.

Return ONLY a JSON array of objects in this exact format:
[
  {"item": "Product Name", "quantity": 1, "price": 0.00}
]

Important:
- "item" must be a string, "quantity" an integer, "price" a number
- Do not include any text before or after the JSON
- Do not use markdown code blocks
- Return [] if no items can be extracted`
