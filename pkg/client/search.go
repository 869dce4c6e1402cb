package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// Search defaults applied when the corresponding SearchQuery field is zero.
const (
	DefaultResultsPerPage = 100
	DefaultPage           = 1
)

// SearchQuery describes one search request. Optional fields left empty are
// omitted from the query string rather than sent as empty values.
type SearchQuery struct {
	// Query is the search term.
	Query string

	// Type restricts results to one result type, e.g. "profile" or "post".
	Type string

	// Facets applies facet filters.
	Facets string

	// RPP is the number of results per page (default 100).
	RPP int

	// Page is the 1-based result page index (default 1).
	Page int

	// Sort names the column to sort by.
	Sort string
}

// Values builds the flat query-parameter set for the search endpoint.
func (q SearchQuery) Values() url.Values {
	rpp := q.RPP
	if rpp <= 0 {
		rpp = DefaultResultsPerPage
	}
	page := q.Page
	if page <= 0 {
		page = DefaultPage
	}

	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("rpp", strconv.Itoa(rpp))
	params.Set("page", strconv.Itoa(page))
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Facets != "" {
		params.Set("facets", q.Facets)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	return params
}

// Search issues a single authenticated search request and returns the parsed
// JSON results. No pagination looping happens here; callers page explicitly
// via SearchQuery.Page.
func (c *Client) Search(ctx context.Context, query SearchQuery) (json.RawMessage, error) {
	return c.Get(ctx, SearchPath, query.Values())
}
