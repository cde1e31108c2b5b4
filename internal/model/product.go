package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Product represents an electronics product row in the catalogue.
type Product struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	BrandID         uuid.UUID  `json:"brandId" db:"brand_id"`
	ProductName     string     `json:"product_name" db:"product_name"`
	CategoryName    string     `json:"category_name" db:"category_name"`
	DescriptionText *string    `json:"description_text" db:"description_text"`
	Price           float64    `json:"price" db:"price"`
	Currency        string     `json:"currency" db:"currency"`
	Processor       *string    `json:"processor" db:"processor"`
	Memory          *string    `json:"memory" db:"memory"`
	ReleaseDate     *time.Time `json:"release_date" db:"release_date"`
	AverageRating   *float64   `json:"average_rating" db:"average_rating"`
	RatingCount     *int       `json:"rating_count" db:"rating_count"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProductWithBrand is a product joined with its owning brand.
type ProductWithBrand struct {
	Product
	Brand Brand
}

// FlatProduct is the reshaped upstream record where the brand is carried by
// name only. Every key is always present in the JSON output; unknown values
// are written as null.
type FlatProduct struct {
	ProductID       *string  `json:"product_id"`
	ProductName     *string  `json:"product_name"`
	BrandName       *string  `json:"brand_name"`
	CategoryName    *string  `json:"category_name"`
	DescriptionText *string  `json:"description_text"`
	Price           *float64 `json:"price"`
	Currency        *string  `json:"currency"`
	Processor       *string  `json:"processor"`
	Memory          *string  `json:"memory"`
	ReleaseDate     *string  `json:"release_date"`
	AverageRating   *float64 `json:"average_rating"`
	RatingCount     *int     `json:"rating_count"`
}

func (p FlatProduct) BrandKey() string       { return deref(p.BrandName) }
func (p FlatProduct) CategoryKey() string    { return deref(p.CategoryName) }
func (p FlatProduct) ReleaseDateKey() string { return deref(p.ReleaseDate) }

// BrandDetail is the brand expanded inline in a catalog product.
type BrandDetail struct {
	Name        string  `json:"name"`
	YearFounded *int    `json:"year_founded"`
	CompanyAge  *int    `json:"company_age"`
	Address     *string `json:"address"`
}

// CatalogProduct is the canonical product representation returned by the
// enriched list endpoints and by the write endpoints.
type CatalogProduct struct {
	ProductID       *string     `json:"product_id"`
	ProductName     *string     `json:"product_name"`
	Brand           BrandDetail `json:"brand"`
	CategoryName    *string     `json:"category_name"`
	DescriptionText *string     `json:"description_text"`
	Price           *float64    `json:"price"`
	Currency        *string     `json:"currency"`
	Processor       *string     `json:"processor"`
	Memory          *string     `json:"memory"`
	ReleaseDate     *string     `json:"release_date"`
	AverageRating   *float64    `json:"average_rating"`
	RatingCount     *int        `json:"rating_count"`
}

func (p CatalogProduct) BrandKey() string       { return p.Brand.Name }
func (p CatalogProduct) CategoryKey() string    { return deref(p.CategoryName) }
func (p CatalogProduct) ReleaseDateKey() string { return deref(p.ReleaseDate) }

// BrandInput is the brand block of a create or update request.
type BrandInput struct {
	Name        string   `json:"name" validate:"required"`
	YearFounded *int     `json:"year_founded" validate:"omitempty,gte=0"`
	Address     *Address `json:"address"`
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	ProductName     string      `json:"product_name" validate:"required"`
	Brand           *BrandInput `json:"brand" validate:"required"`
	CategoryName    string      `json:"category_name" validate:"required"`
	DescriptionText *string     `json:"description_text"`
	Price           *float64    `json:"price" validate:"required,gte=0"`
	Currency        string      `json:"currency" validate:"required,max=8"`
	Processor       *string     `json:"processor"`
	Memory          *string     `json:"memory"`
	ReleaseDate     *string     `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	AverageRating   *float64    `json:"average_rating" validate:"omitempty,gte=0"`
	RatingCount     *int        `json:"rating_count" validate:"omitempty,gte=0"`
}

// UpdateProductRequest is a partial canonical product. Nil required fields
// are left alone; optional fields supplied as null clear the column.
type UpdateProductRequest struct {
	ProductName     *string           `json:"product_name" validate:"omitempty,min=1"`
	Brand           *BrandInput       `json:"brand"`
	CategoryName    *string           `json:"category_name" validate:"omitempty,min=1"`
	DescriptionText Nullable[string]  `json:"description_text"`
	Price           *float64          `json:"price" validate:"omitempty,gte=0"`
	Currency        *string           `json:"currency" validate:"omitempty,min=1,max=8"`
	Processor       Nullable[string]  `json:"processor"`
	Memory          Nullable[string]  `json:"memory"`
	ReleaseDate     Nullable[string]  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	AverageRating   Nullable[float64] `json:"average_rating" validate:"omitempty,gte=0"`
	RatingCount     Nullable[int]     `json:"rating_count" validate:"omitempty,gte=0"`
}

// ProductChangeSet lists the product columns an update will write.
type ProductChangeSet struct {
	BrandID         *uuid.UUID
	ProductName     *string
	CategoryName    *string
	DescriptionText Nullable[string]
	Price           *float64
	Currency        *string
	Processor       Nullable[string]
	Memory          Nullable[string]
	ReleaseDate     Nullable[time.Time]
	AverageRating   Nullable[float64]
	RatingCount     Nullable[int]
}

// ToMap returns column -> value for every field that is set. Optional
// columns supplied as null map to nil.
func (c ProductChangeSet) ToMap() map[string]any {
	m := make(map[string]any)
	if c.BrandID != nil {
		m["brand_id"] = *c.BrandID
	}
	if c.ProductName != nil {
		m["product_name"] = *c.ProductName
	}
	if c.CategoryName != nil {
		m["category_name"] = *c.CategoryName
	}
	if c.Price != nil {
		m["price"] = *c.Price
	}
	if c.Currency != nil {
		m["currency"] = *c.Currency
	}

	optional := []struct {
		column string
		value  interface{ column() (any, bool) }
	}{
		{"description_text", c.DescriptionText},
		{"processor", c.Processor},
		{"memory", c.Memory},
		{"release_date", c.ReleaseDate},
		{"average_rating", c.AverageRating},
		{"rating_count", c.RatingCount},
	}
	for _, o := range optional {
		if v, ok := o.value.column(); ok {
			m[o.column] = v
		}
	}
	return m
}

// IsEmpty reports whether the change set writes nothing.
func (c ProductChangeSet) IsEmpty() bool {
	return len(c.ToMap()) == 0
}

// OffsetQuery holds the page/limit style listing parameters, with optional
// exact-match brand and category filters pushed down to the database.
type OffsetQuery struct {
	Page     int
	Limit    int
	Brand    string
	Category string
}

// Offset returns the number of rows to skip. Callers bound Page so the
// product fits in an int.
func (q OffsetQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
