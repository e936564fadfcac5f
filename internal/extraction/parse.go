package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// payloadShape classifies the JSON payload returned by a model: a bare
// array, an object wrapping an array under some key, or unrecognized
type payloadShape int

const (
	shapeArray payloadShape = iota
	shapeObjectWrappingArray
	shapeUnrecognized
)

// looseItem accepts whatever field types the model produced; coercion to
// RawItem happens in coerceItem
type looseItem struct {
	Item     any `json:"item"`
	Quantity any `json:"quantity"`
	Price    any `json:"price"`
}

// parseItemArray parses the JSON response from an extraction backend.
// Models occasionally wrap the array in markdown fences, prose, or an
// enclosing object, so the array is located defensively before decoding.
func parseItemArray(text string) ([]RawItem, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	elements, shape := resolveArray(text)
	if shape == shapeUnrecognized {
		// Last resort: scan for an array substring to strip prose wrapping
		startIdx := strings.Index(text, "[")
		endIdx := strings.LastIndex(text, "]")
		if startIdx == -1 || endIdx < startIdx {
			return nil, fmt.Errorf("no JSON array found in response")
		}
		elements, shape = resolveArray(text[startIdx : endIdx+1])
		if shape == shapeUnrecognized {
			return nil, fmt.Errorf("invalid JSON array in response")
		}
	}

	items := make([]RawItem, 0, len(elements))
	for _, element := range elements {
		var loose looseItem
		if err := json.Unmarshal(element, &loose); err != nil {
			// Not an object, drop it rather than failing the batch
			continue
		}
		items = append(items, coerceItem(loose))
	}

	return items, nil
}

// resolveArray decodes text as a JSON array of elements, unwrapping a
// single enclosing object if the model added one
func resolveArray(text string) ([]json.RawMessage, payloadShape) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err == nil {
		return elements, shapeArray
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &wrapper); err == nil {
		for _, value := range wrapper {
			if err := json.Unmarshal(value, &elements); err == nil {
				return elements, shapeObjectWrappingArray
			}
		}
	}

	return nil, shapeUnrecognized
}

// coerceItem converts a loosely-typed element to a RawItem, substituting
// safe defaults for missing or malformed fields
func coerceItem(loose looseItem) RawItem {
	item := RawItem{
		Item:     "Unknown",
		Quantity: 1,
		Price:    0.0,
	}

	if name, ok := loose.Item.(string); ok && strings.TrimSpace(name) != "" {
		item.Item = strings.TrimSpace(name)
	}

	if quantity, ok := coerceFloat(loose.Quantity); ok && int(quantity) > 0 {
		item.Quantity = int(quantity)
	}

	if price, ok := coerceFloat(loose.Price); ok && price >= 0 {
		item.Price = price
	}

	return item
}

// coerceFloat extracts a numeric value from a JSON field that may have
// been returned as a number or a numeric string
func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
