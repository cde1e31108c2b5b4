package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Brand represents a manufacturer that owns zero or more products.
type Brand struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	YearFounded *int      `json:"year_founded" db:"year_founded"`
	Address     Address   `json:"address"`
}

// Address is either a free-text line or a structured postal address.
// It decodes from a JSON string or from an object with street, city,
// state, postal_code and country keys.
type Address struct {
	Line       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Structured bool
}

type addressParts struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// UnmarshalJSON accepts null, a string or an address object.
func (a *Address) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Address{}
		return nil
	}

	if data[0] == '"' {
		var line string
		if err := json.Unmarshal(data, &line); err != nil {
			return err
		}
		*a = Address{Line: line}
		return nil
	}

	var parts addressParts
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	*a = Address{
		Street:     parts.Street,
		City:       parts.City,
		State:      parts.State,
		PostalCode: parts.PostalCode,
		Country:    parts.Country,
		Structured: true,
	}
	return nil
}

// MarshalJSON writes the address back in the form it was given.
func (a Address) MarshalJSON() ([]byte, error) {
	if a.Structured {
		return json.Marshal(addressParts{
			Street:     a.Street,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		})
	}
	if a.Line == "" {
		return []byte("null"), nil
	}
	return json.Marshal(a.Line)
}

// Format flattens the address into a single line. Structured parts are
// joined with ", " in street, city, state, postal_code, country order;
// empty parts are skipped. Returns nil when there is nothing to show.
func (a Address) Format() *string {
	if !a.Structured {
		if a.Line == "" {
			return nil
		}
		line := a.Line
		return &line
	}

	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	line := strings.Join(parts, ", ")
	return &line
}

// CompanyAge returns the number of calendar years since yearFounded as of now.
// It is derived at read time and never stored, so the same row reports a
// different age after a year boundary.
func CompanyAge(yearFounded *int, now time.Time) *int {
	if yearFounded == nil {
		return nil
	}
	age := now.Year() - *yearFounded
	return &age
}
