package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// defaultAggregatePrice is assumed when no price is mentioned anywhere
// in the transcript
const defaultAggregatePrice = 100.0

var (
	// A number immediately followed by a currency or total token,
	// e.g. "500 rs", "1200 total"
	aggregatePriceRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:rs|inr|rupees|bucks|total)`)

	// Leading "[12:01, Ravi]"-style timestamp/sender annotations
	bracketPrefixRegex = regexp.MustCompile(`^\[[^\]]*\]\s*`)

	// "<quantity> <item words>" and the reversed phrasing, since chat
	// ordering varies ("2 pizza" vs "pizza 2")
	quantityItemRegex = regexp.MustCompile(`(\d+)\s+([a-zA-Z][a-zA-Z ]{2,19})`)
	itemQuantityRegex = regexp.MustCompile(`([a-zA-Z][a-zA-Z ]{2,19})\s+(\d+)`)
)

// fillerWords and fillerPhrases mark a message as conversational rather
// than an order. Single words match whole fields only, so "hi" does not
// fire inside "chips" or "chicken".
var (
	fillerWords = []string{
		"hi", "hello", "hey", "thank", "thanks",
		"placed", "total", "done", "bye",
	}
	fillerPhrases = []string{
		"good morning", "good evening", "how much", "how are",
	}
)

// ExtractViaRegex is the deterministic fallback used when AI extraction
// is unavailable or returned nothing. It is a best-effort heuristic:
// its job is to keep the pipeline alive, not to match AI-level accuracy.
// It never fails; the worst case is a single placeholder line item.
func ExtractViaRegex(messages []string) []RawItem {
	aggregate := findAggregatePrice(messages)

	type matchSlot struct {
		name     string
		quantity int
	}
	var slots []matchSlot

	for _, msg := range messages {
		text := bracketPrefixRegex.ReplaceAllString(strings.TrimSpace(msg), "")
		if isFiller(text) {
			continue
		}
		// Drop price mentions so "600 rupees" is not mistaken for an item
		text = aggregatePriceRegex.ReplaceAllString(text, "")

		if m := quantityItemRegex.FindStringSubmatch(text); m != nil {
			if quantity, err := strconv.Atoi(m[1]); err == nil && quantity > 0 {
				slots = append(slots, matchSlot{name: titleCase(m[2]), quantity: quantity})
				continue
			}
		}
		if m := itemQuantityRegex.FindStringSubmatch(text); m != nil {
			if quantity, err := strconv.Atoi(m[2]); err == nil && quantity > 0 {
				slots = append(slots, matchSlot{name: titleCase(m[1]), quantity: quantity})
			}
		}
	}

	total := aggregate
	if total == 0 {
		total = defaultAggregatePrice
	}

	if len(slots) == 0 {
		return []RawItem{{Item: "Order Items", Quantity: 1, Price: total}}
	}

	// The total is split evenly across match slots, then each slot's
	// share is divided by its own quantity to yield a unit price
	share := total / float64(len(slots))
	items := make([]RawItem, 0, len(slots))
	for _, slot := range slots {
		unitPrice := roundTo2(share / float64(slot.quantity))
		items = append(items, RawItem{
			Item:     slot.name,
			Quantity: slot.quantity,
			Price:    unitPrice,
		})
	}

	return items
}

// findAggregatePrice scans the joined transcript for a stated total,
// first match wins
func findAggregatePrice(messages []string) float64 {
	blob := strings.Join(messages, " ")
	m := aggregatePriceRegex.FindStringSubmatch(blob)
	if m == nil {
		return 0
	}
	price, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return price
}

func isFiller(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range fillerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, field := range strings.Fields(lower) {
		field = strings.Trim(field, ".,!?")
		for _, word := range fillerWords {
			if field == word {
				return true
			}
		}
	}
	return false
}

func roundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}
