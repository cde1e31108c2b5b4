package catalog

import "net/url"

// Query is a parsed list request.
type Query struct {
	Filter Filter
	Page   *Page
}

// ParseQuery validates pagination first and dates second, so a request with
// both problems reports the pagination error. Nothing here touches a source.
func ParseQuery(values url.Values, policy PagePolicy) (Query, error) {
	page, err := ParsePage(values, policy)
	if err != nil {
		return Query{}, err
	}
	filter, err := ParseFilter(values)
	if err != nil {
		return Query{}, err
	}
	return Query{Filter: filter, Page: page}, nil
}

// Run filters then paginates records. The result is never nil.
func Run[T Record](records []T, q Query) []T {
	return Paginate(Apply(records, q.Filter), q.Page)
}

// Validate keeps the upstream records carrying every required field.
func Validate(raw []RawRecord) []RawRecord {
	out := make([]RawRecord, 0, len(raw))
	for _, r := range raw {
		if IsValidRecord(r) {
			out = append(out, r)
		}
	}
	return out
}
