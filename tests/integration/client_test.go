package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/zanachka/quickpin-api/internal/testutil"
	"github.com/zanachka/quickpin-api/pkg/client"
	"github.com/zanachka/quickpin-api/pkg/submit"
)

// newTestClient authenticates against the mock via a login exchange.
func newTestClient(t *testing.T, mock *testutil.MockQuickPin) *client.Client {
	t.Helper()

	cfg := client.DefaultConfig(mock.URL())
	cfg.Username = "alice@example.com"
	cfg.Password = "hunter2"

	c, err := client.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestFullFlow_AuthenticateSubmitSearch(t *testing.T) {
	mock := testutil.NewMockQuickPin()
	defer mock.Close()

	c := newTestClient(t, mock)

	if got := mock.GetAuthRequestCount(); got != 1 {
		t.Errorf("Auth requests = %d, want 1", got)
	}
	if c.Token() != mock.Token {
		t.Errorf("Token = %q, want %q", c.Token(), mock.Token)
	}

	// Submit five usernames in chunks of two.
	submitter := submit.New(c, submit.Config{ChunkSize: 2})
	responses, err := submitter.SubmitUsernames(context.Background(),
		[]string{"a", "b", "c", "d", "e"}, "twitter", false)
	if err != nil {
		t.Fatalf("Submission failed: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("Responses = %d, want 3", len(responses))
	}

	payloads := mock.GetProfilePayloads()
	if len(payloads) != 3 {
		t.Fatalf("Server saw %d submissions, want 3", len(payloads))
	}
	wantSizes := []int{2, 2, 1}
	for i, payload := range payloads {
		if len(payload.Profiles) != wantSizes[i] {
			t.Errorf("Chunk %d size = %d, want %d", i, len(payload.Profiles), wantSizes[i])
		}
		for _, p := range payload.Profiles {
			if p["site"] != "twitter" || p["username"] == "" {
				t.Errorf("Chunk %d profile = %v", i, p)
			}
			if _, ok := p["upstream_id"]; ok {
				t.Errorf("Chunk %d profile carries upstream_id for a username submission", i)
			}
		}
	}

	// Every authenticated request carried the token.
	if got := mock.LastRequestHeader.Get("X-Auth"); got != mock.Token {
		t.Errorf("X-Auth = %q, want %q", got, mock.Token)
	}

	// Search shares the same session.
	raw, err := c.Search(context.Background(), client.SearchQuery{Query: "acme"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	var results struct {
		Results    []any `json:"results"`
		TotalCount int   `json:"total_count"`
	}
	if err := json.Unmarshal(raw, &results); err != nil {
		t.Fatalf("Unmarshal search results: %v", err)
	}
}

func TestFullFlow_TokenShortCircuit(t *testing.T) {
	mock := testutil.NewMockQuickPin()
	defer mock.Close()

	cfg := client.DefaultConfig(mock.URL())
	cfg.Token = "pre-resolved"

	if _, err := client.New(context.Background(), cfg); err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if got := mock.GetAuthRequestCount(); got != 0 {
		t.Errorf("Auth requests = %d, want 0 for a supplied token", got)
	}
}

func TestFullFlow_AbortOnServerFailure(t *testing.T) {
	mock := testutil.NewMockQuickPin()
	defer mock.Close()

	// Second submission request fails with a 500.
	mock.FailAfter(1, http.StatusInternalServerError)

	c := newTestClient(t, mock)
	submitter := submit.New(c, submit.Config{ChunkSize: 1})

	_, err := submitter.SubmitUsernames(context.Background(),
		[]string{"a", "b", "c", "d"}, "twitter", false)
	if !client.IsTransport(err) {
		t.Fatalf("Expected transport error, got %v", err)
	}

	// One auth request, one successful submission, one failed submission;
	// the remaining two chunks were never dispatched.
	if got := mock.GetRequestCount(); got != 3 {
		t.Errorf("Total requests = %d, want 3", got)
	}
}

func TestFullFlow_PacedSubmission(t *testing.T) {
	mock := testutil.NewMockQuickPin()
	defer mock.Close()

	c := newTestClient(t, mock)
	interval := 25 * time.Millisecond
	submitter := submit.New(c, submit.Config{ChunkSize: 1, Interval: interval})

	start := time.Now()
	if _, err := submitter.SubmitUsernames(context.Background(),
		[]string{"a", "b", "c"}, "twitter", false); err != nil {
		t.Fatalf("Submission failed: %v", err)
	}

	if elapsed, min := time.Since(start), 2*interval; elapsed < min {
		t.Errorf("Elapsed = %v, want >= %v", elapsed, min)
	}
}
