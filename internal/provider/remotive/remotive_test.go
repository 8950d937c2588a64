package remotive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"go.uber.org/zap"
)

const sampleResponse = `{
	"jobs": [
		{
			"title": "Backend Engineer",
			"company_name": "Globex",
			"candidate_required_location": "Worldwide",
			"description": "<p>Own the <em>platform</em></p>",
			"url": "https://remotive.example/1",
			"publication_date": "2023-10-27T08:30:00"
		},
		{
			"title": "Platform Engineer"
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(zap.NewNop())
	client.APIURL = server.URL

	return client
}

func TestSearchNormalizesItems(t *testing.T) {
	var gotSearch, gotLimit string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(sampleResponse))
	})

	found, err := client.Search(context.Background(), &jobs.SearchParams{Query: "backend"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotSearch != "backend" {
		t.Fatalf("unexpected search param: %q", gotSearch)
	}

	if gotLimit != resultLimit {
		t.Fatalf("unexpected limit: %q", gotLimit)
	}

	if len(found) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(found))
	}

	first := found[0]
	if first.Description != "Own the platform" {
		t.Fatalf("expected html stripped, got %q", first.Description)
	}
	if first.Location != "Worldwide" {
		t.Fatalf("unexpected location: %q", first.Location)
	}
	if first.Source != SourceLabel {
		t.Fatalf("unexpected source: %q", first.Source)
	}

	second := found[1]
	if second.Company != jobs.PlaceholderMissing || second.Location != jobs.PlaceholderLocation {
		t.Fatalf("expected placeholders for missing fields: %+v", second)
	}
}

func TestSearchTransportErrorYieldsEmptyResult(t *testing.T) {
	client := New(zap.NewNop())
	// Point at a closed server to force a connection failure.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client.APIURL = server.URL
	server.Close()

	found, err := client.Search(context.Background(), &jobs.SearchParams{Query: "go"})
	if err != nil {
		t.Fatalf("transport errors must be absorbed: %v", err)
	}

	if len(found) != 0 {
		t.Fatalf("expected empty result, got %d", len(found))
	}
}

func TestSearchServerErrorYieldsEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	})

	found, err := client.Search(context.Background(), &jobs.SearchParams{Query: "go"})
	if err != nil {
		t.Fatalf("server errors must be absorbed: %v", err)
	}

	if len(found) != 0 {
		t.Fatalf("expected empty result, got %d", len(found))
	}
}
