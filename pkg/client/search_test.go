package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
)

func TestSearchQuery_Values(t *testing.T) {
	tests := []struct {
		name     string
		query    SearchQuery
		expected url.Values
	}{
		{
			name:  "defaults applied, optionals omitted",
			query: SearchQuery{Query: "acme"},
			expected: url.Values{
				"query": {"acme"},
				"rpp":   {"100"},
				"page":  {"1"},
			},
		},
		{
			name: "all fields set",
			query: SearchQuery{
				Query:  "acme",
				Type:   "profile",
				Facets: "site:twitter",
				RPP:    25,
				Page:   3,
				Sort:   "name",
			},
			expected: url.Values{
				"query":  {"acme"},
				"rpp":    {"25"},
				"page":   {"3"},
				"type":   {"profile"},
				"facets": {"site:twitter"},
				"sort":   {"name"},
			},
		},
		{
			name:  "negative paging falls back to defaults",
			query: SearchQuery{Query: "acme", RPP: -1, Page: -5},
			expected: url.Values{
				"query": {"acme"},
				"rpp":   {"100"},
				"page":  {"1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.Values()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Values() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSearch_SingleRequest(t *testing.T) {
	var gotQuery url.Values
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results": [], "total_count": 0}`))
	}))
	defer server.Close()

	c, err := New(context.Background(), Config{BaseURL: server.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.Search(context.Background(), SearchQuery{Query: "acme"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if requests != 1 {
		t.Errorf("Requests = %d, want exactly 1 (no pagination looping)", requests)
	}
	for _, absent := range []string{"type", "facets", "sort"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("Query param %q sent, want it omitted", absent)
		}
	}
	if gotQuery.Get("rpp") != "100" || gotQuery.Get("page") != "1" {
		t.Errorf("Defaults not applied: rpp=%q page=%q", gotQuery.Get("rpp"), gotQuery.Get("page"))
	}
}
