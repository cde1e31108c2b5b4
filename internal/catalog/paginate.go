package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Tent9481/product-apis/internal/model"
)

const (
	ParamPageSize   = "page_size"
	ParamPageNumber = "page_number"

	ParamPage  = "page"
	ParamLimit = "limit"
)

// Offset-style listing defaults.
const (
	DefaultLimit = 5
	MaxLimit     = 100
)

// PagePolicy says how an endpoint treats page_size and page_number.
type PagePolicy int

const (
	// PageNone ignores pagination parameters.
	PageNone PagePolicy = iota
	// PageOptional paginates only when both parameters are supplied. Supplying
	// just one of them is an error.
	PageOptional
	// PageRequired rejects requests without both parameters.
	PageRequired
)

// Page is a validated page request. Size and Number are both >= 1.
type Page struct {
	Size   int
	Number int
}

// ParsePage reads page_size and page_number according to policy. It returns
// nil when no pagination applies.
func ParsePage(values url.Values, policy PagePolicy) (*Page, error) {
	if policy == PageNone {
		return nil, nil
	}

	rawSize, hasSize := lookup(values, ParamPageSize)
	rawNumber, hasNumber := lookup(values, ParamPageNumber)

	if policy == PageOptional && !hasSize && !hasNumber {
		return nil, nil
	}

	size, ok := positiveInt(rawSize)
	if !ok {
		return nil, model.ErrInvalidPagination
	}
	number, ok := positiveInt(rawNumber)
	if !ok {
		return nil, model.ErrInvalidPagination
	}
	return &Page{Size: size, Number: number}, nil
}

// Bounds returns the [start, end) window of the page clamped to n items.
func (p Page) Bounds(n int) (start, end int) {
	if n <= 0 || p.Number-1 > (n-1)/p.Size {
		return n, n
	}
	start = (p.Number - 1) * p.Size
	end = start + min(p.Size, n-start)
	return start, end
}

// Paginate returns the requested page of records. A page past the end is
// empty, not an error. A nil page returns records unchanged.
func Paginate[T any](records []T, p *Page) []T {
	if p == nil {
		return records
	}
	start, end := p.Bounds(len(records))
	out := make([]T, end-start)
	copy(out, records[start:end])
	return out
}

// ParseOffsetQuery reads page (default 1), limit (default DefaultLimit,
// capped at MaxLimit), brand and category for the database-paged listing.
func ParseOffsetQuery(values url.Values) (model.OffsetQuery, error) {
	q := model.OffsetQuery{
		Page:     1,
		Limit:    DefaultLimit,
		Brand:    strings.TrimSpace(values.Get(ParamBrand)),
		Category: strings.TrimSpace(values.Get(ParamCategory)),
	}

	if raw, ok := lookup(values, ParamPage); ok {
		n, valid := positiveInt(raw)
		if !valid {
			return model.OffsetQuery{}, model.ErrInvalidPageLimit
		}
		q.Page = n
	}
	if raw, ok := lookup(values, ParamLimit); ok {
		n, valid := positiveInt(raw)
		if !valid {
			return model.OffsetQuery{}, model.ErrInvalidPageLimit
		}
		q.Limit = min(n, MaxLimit)
	}
	// Offset() must not overflow.
	if q.Page-1 > math.MaxInt/q.Limit {
		return model.OffsetQuery{}, model.ErrInvalidPageLimit
	}
	return q, nil
}

func lookup(values url.Values, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
