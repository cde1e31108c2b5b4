// Package catalog holds the shared read pipeline: record validation,
// shape normalization, filtering and pagination. Every list endpoint runs
// its source's records through the same stages.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Tent9481/product-apis/internal/model"
)

// RawRecord is one upstream item as decoded from JSON.
type RawRecord map[string]any

// RequiredFields must all be present as keys on an upstream item. Values
// may be null.
var RequiredFields = []string{
	"id", "name", "brand", "category", "description", "price", "currency",
	"processor", "memory", "release_date", "average_rating", "rating_count",
}

// IsValidRecord reports whether every required key is present.
func IsValidRecord(raw RawRecord) bool {
	for _, field := range RequiredFields {
		if _, ok := raw[field]; !ok {
			return false
		}
	}
	return true
}

// DecodeArray decodes a JSON array of objects. A body that is not an array
// yields model.ErrUpstreamFormat; array elements that are not objects are
// skipped. Numbers are kept as json.Number.
func DecodeArray(r io.Reader) ([]RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamFormat, err)
	}

	items, ok := body.([]any)
	if !ok {
		return nil, model.ErrUpstreamFormat
	}

	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, RawRecord(obj))
	}
	return records, nil
}
