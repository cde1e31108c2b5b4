package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Tent9481/product-apis/internal/model"
)

// NormalizeFlat maps a validated upstream record to the flat shape, where
// the brand is carried by name only.
func NormalizeFlat(raw RawRecord) model.FlatProduct {
	return model.FlatProduct{
		ProductID:       stringValue(raw["id"]),
		ProductName:     stringValue(raw["name"]),
		BrandName:       stringValue(raw["brand"]),
		CategoryName:    stringValue(raw["category"]),
		DescriptionText: stringValue(raw["description"]),
		Price:           floatValue(raw["price"]),
		Currency:        stringValue(raw["currency"]),
		Processor:       stringValue(raw["processor"]),
		Memory:          stringValue(raw["memory"]),
		ReleaseDate:     stringValue(raw["release_date"]),
		AverageRating:   floatValue(raw["average_rating"]),
		RatingCount:     intValue(raw["rating_count"]),
	}
}

// NormalizeEnriched maps a validated upstream record and its resolved brand
// to the canonical shape.
func NormalizeEnriched(raw RawRecord, brand model.Brand, now time.Time) model.CatalogProduct {
	flat := NormalizeFlat(raw)
	return model.CatalogProduct{
		ProductID:       flat.ProductID,
		ProductName:     flat.ProductName,
		Brand:           BrandDetailFor(brand, now),
		CategoryName:    flat.CategoryName,
		DescriptionText: flat.DescriptionText,
		Price:           flat.Price,
		Currency:        flat.Currency,
		Processor:       flat.Processor,
		Memory:          flat.Memory,
		ReleaseDate:     flat.ReleaseDate,
		AverageRating:   flat.AverageRating,
		RatingCount:     flat.RatingCount,
	}
}

// NormalizeRow maps a joined product/brand row to the canonical shape.
func NormalizeRow(row model.ProductWithBrand, now time.Time) model.CatalogProduct {
	id := row.ID.String()
	name := row.ProductName
	category := row.CategoryName
	price := row.Price
	currency := row.Currency

	var releaseDate *string
	if row.ReleaseDate != nil {
		s := row.ReleaseDate.Format(model.DateLayout)
		releaseDate = &s
	}

	return model.CatalogProduct{
		ProductID:       &id,
		ProductName:     &name,
		Brand:           BrandDetailFor(row.Brand, now),
		CategoryName:    &category,
		DescriptionText: row.DescriptionText,
		Price:           &price,
		Currency:        &currency,
		Processor:       row.Processor,
		Memory:          row.Memory,
		ReleaseDate:     releaseDate,
		AverageRating:   row.AverageRating,
		RatingCount:     row.RatingCount,
	}
}

// BrandDetailFor expands a brand inline, deriving company_age from now.
func BrandDetailFor(b model.Brand, now time.Time) model.BrandDetail {
	return model.BrandDetail{
		Name:        b.Name,
		YearFounded: b.YearFounded,
		CompanyAge:  model.CompanyAge(b.YearFounded, now),
		Address:     b.Address.Format(),
	}
}

// ParseBrand reads an upstream brand record. Records without a non-empty
// string name cannot be joined on and are rejected.
func ParseBrand(raw RawRecord) (model.Brand, bool) {
	name := stringValue(raw["name"])
	if name == nil || *name == "" {
		return model.Brand{}, false
	}

	b := model.Brand{
		Name:        *name,
		YearFounded: intValue(raw["year_founded"]),
	}

	if v, ok := raw["address"]; ok && v != nil {
		// Re-encode so Address can pick string or object form itself.
		if data, err := json.Marshal(v); err == nil {
			var addr model.Address
			if err := json.Unmarshal(data, &addr); err == nil {
				b.Address = addr
			}
		}
	}
	return b, true
}

func stringValue(v any) *string {
	switch t := v.(type) {
	case string:
		return &t
	case json.Number:
		s := t.String()
		return &s
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

func floatValue(v any) *float64 {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return &f
	case float64:
		return &t
	case string:
		f, ok := parseNumber(t)
		if !ok {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func intValue(v any) *int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			i := int(n)
			return &i
		}
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return wholeNumber(f)
	case float64:
		return wholeNumber(t)
	case string:
		f, ok := parseNumber(t)
		if !ok {
			return nil
		}
		return wholeNumber(f)
	default:
		return nil
	}
}

// parseNumber reads a numeric string such as "999.99". NaN and infinities
// are rejected since they cannot be written back as JSON.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func wholeNumber(f float64) *int {
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return nil
	}
	i := int(f)
	return &i
}
