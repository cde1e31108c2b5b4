package catalog

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Tent9481/product-apis/internal/model"
)

// Query parameter names shared by the list endpoints.
const (
	ParamBrands           = "brands"
	ParamBrand            = "brand"
	ParamCategory         = "category"
	ParamReleaseDateStart = "release_date_start"
	ParamReleaseDateEnd   = "release_date_end"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// recordDateLayouts are tried in order when reading a record's release_date.
var recordDateLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Record is anything the filter stage can inspect.
type Record interface {
	BrandKey() string
	CategoryKey() string
	ReleaseDateKey() string
}

// Filter is the conjunction of the optional list predicates. Zero values
// impose no constraint.
type Filter struct {
	Brands   []string
	Category string
	Start    *time.Time
	End      *time.Time
}

// IsZero reports whether the filter keeps every record.
func (f Filter) IsZero() bool {
	return len(f.Brands) == 0 && f.Category == "" && f.Start == nil && f.End == nil
}

// ParseFilter reads brands (or its alias brand), category and the release
// date bounds from query values. A supplied date that is not a real
// YYYY-MM-DD calendar date is rejected.
func ParseFilter(values url.Values) (Filter, error) {
	var f Filter

	brands := values.Get(ParamBrands)
	if brands == "" {
		brands = values.Get(ParamBrand)
	}
	f.Brands = splitList(brands)
	f.Category = strings.TrimSpace(values.Get(ParamCategory))

	var err error
	if f.Start, err = ParseDateParam(ParamReleaseDateStart, values.Get(ParamReleaseDateStart)); err != nil {
		return Filter{}, err
	}
	if f.End, err = ParseDateParam(ParamReleaseDateEnd, values.Get(ParamReleaseDateEnd)); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// ParseDateParam parses a strict YYYY-MM-DD value as UTC midnight. An empty
// value means the bound is absent.
func ParseDateParam(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if !datePattern.MatchString(value) {
		return nil, model.InvalidDateError(name)
	}
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return nil, model.InvalidDateError(name)
	}
	return &t, nil
}

// Match reports whether r satisfies every supplied predicate. Once a date
// bound is set, a record whose release date is missing or unparseable never
// matches.
func (f Filter) Match(r Record) bool {
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, r.BrandKey()) {
		return false
	}
	if f.Category != "" && r.CategoryKey() != f.Category {
		return false
	}
	if f.Start == nil && f.End == nil {
		return true
	}

	released, ok := parseRecordDate(r.ReleaseDateKey())
	if !ok {
		return false
	}
	if f.Start != nil && released.Before(*f.Start) {
		return false
	}
	if f.End != nil && released.After(*f.End) {
		return false
	}
	return true
}

// Apply returns the records matching f in their original order. The input
// slice is never modified and the result is never nil.
func Apply[T Record](records []T, f Filter) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func parseRecordDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
