package extraction

import "strings"

// Dedupe merges repeated mentions of the same normalized item name into a
// single entry, preserving first-seen order. It is the single authoritative
// merge step: both AI output and regex-fallback output pass through it, so
// the result carries one entry per distinct item regardless of source.
// Idempotent; invalid entries are skipped, never propagated as errors.
func Dedupe(raw []RawItem) []LineItem {
	seen := make(map[string]int)
	items := make([]LineItem, 0, len(raw))

	for _, entry := range raw {
		name := titleCase(entry.Item)
		if name == "" {
			continue
		}

		quantity := entry.Quantity
		if quantity < 1 {
			quantity = 1
		}
		price := entry.Price
		if price < 0 {
			price = 0
		}

		if i, ok := seen[name]; ok {
			items[i].Quantity += quantity
			// A zero price on a later duplicate must not erase a
			// previously known positive price
			if price > 0 {
				items[i].UnitPrice = price
			}
			continue
		}

		seen[name] = len(items)
		items = append(items, LineItem{
			Name:      name,
			Quantity:  quantity,
			UnitPrice: price,
		})
	}

	return items
}

// titleCase trims and title-cases an item name so that "margherita pizza"
// and "Margherita Pizza" collapse to the same key
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
