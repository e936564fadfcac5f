package extraction

import (
	"context"
	"log/slog"
)

// Parser orchestrates the extraction pipeline: an AI attempt (the backend
// handles its own retry), the regex fallback when the AI path fails or
// yields nothing, and deduplication of whichever result survives.
type Parser struct {
	extractor Extractor
}

// NewParser creates a Parser around an extraction backend. A nil extractor
// is allowed (no credential configured) and short-circuits to the fallback.
func NewParser(extractor Extractor) *Parser {
	return &Parser{extractor: extractor}
}

// ParseChats converts a chat transcript into deduplicated line items.
// It never fails; an empty result means nothing could be extracted and is
// for callers to judge, not an error at this layer.
func (p *Parser) ParseChats(ctx context.Context, messages []string) []LineItem {
	var raw []RawItem

	if p.extractor == nil {
		slog.Warn("No extractor configured, using regex fallback")
	} else {
		items, err := p.extractor.ExtractItems(ctx, messages)
		if err != nil {
			slog.Warn("AI extraction failed, using regex fallback", "error", err)
		} else {
			raw = items
		}
	}

	if len(raw) == 0 {
		raw = ExtractViaRegex(messages)
	}

	return Dedupe(raw)
}
