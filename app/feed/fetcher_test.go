package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Wire</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>  Missile strike hits port city  </title>
      <link>https://example.com/item1</link>
      <description>&lt;p&gt;Dozens &amp;amp; more reported &lt;b&gt;killed&lt;/b&gt;&lt;/p&gt;</description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Ceasefire talks resume</title>
      <link>https://example.com/item2</link>
      <description>Negotiators returned to the table</description>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Market update</title>
      <link>https://example.com/item3</link>
      <description>Stocks closed higher</description>
    </item>
  </channel>
</rss>`

func TestFetcher_Parse_RSS2(t *testing.T) {
	fetcher := NewFetcher(nil, "test-agent")
	source := Source{Name: "Test Wire", URL: "https://example.com/rss", MaxItems: 30}

	items, err := fetcher.Parse([]byte(rssFixture), source)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Missile strike hits port city" {
		t.Errorf("Expected trimmed title, got %q", first.Title)
	}
	if first.Link != "https://example.com/item1" {
		t.Errorf("Expected link preserved, got %q", first.Link)
	}
	if first.Description != "Dozens & more reported killed" {
		t.Errorf("Expected markup stripped from description, got %q", first.Description)
	}
	if first.Published != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected raw pubDate preserved, got %q", first.Published)
	}
	if first.Source != "Test Wire" {
		t.Errorf("Expected source name attached, got %q", first.Source)
	}

	// Item without pubDate carries an empty Published value.
	if items[2].Published != "" {
		t.Errorf("Expected empty Published for item without pubDate, got %q", items[2].Published)
	}
}

func TestFetcher_Parse_Atom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Drone attack on depot</title>
    <link href="https://example.com/entry1"/>
    <id>urn:uuid:entry-1</id>
    <published>2023-07-03T10:00:00Z</published>
    <updated>2023-07-03T11:00:00Z</updated>
    <summary>Fuel storage hit overnight</summary>
  </entry>
</feed>`

	fetcher := NewFetcher(nil, "test-agent")
	source := Source{Name: "Atom Wire", URL: "https://example.com/atom", MaxItems: 30}

	items, err := fetcher.Parse([]byte(atomData), source)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Drone attack on depot" {
		t.Errorf("Expected entry title, got %q", items[0].Title)
	}
	if items[0].Description != "Fuel storage hit overnight" {
		t.Errorf("Expected summary as description, got %q", items[0].Description)
	}
	if items[0].Published != "2023-07-03T10:00:00Z" {
		t.Errorf("Expected raw published value, got %q", items[0].Published)
	}
}

func TestFetcher_Parse_MaxItems(t *testing.T) {
	fetcher := NewFetcher(nil, "test-agent")
	source := Source{Name: "Test Wire", URL: "https://example.com/rss", MaxItems: 1}

	items, err := fetcher.Parse([]byte(rssFixture), source)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item with max_items=1, got %d", len(items))
	}
	if items[0].Title != "Missile strike hits port city" {
		t.Errorf("Expected the first item to be kept, got %q", items[0].Title)
	}
}

func TestFetcher_Parse_InvalidData(t *testing.T) {
	fetcher := NewFetcher(nil, "test-agent")
	source := Source{Name: "Broken", URL: "https://example.com/rss"}

	if _, err := fetcher.Parse([]byte("this is not a feed"), source); err == nil {
		t.Errorf("Expected error for unparseable data")
	}
}

func TestFetcher_Fetch(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "DebtOfWar/2.0 (test)")
	source := Source{Name: "Test Wire", URL: server.URL, MaxItems: 30}

	items, err := fetcher.Fetch(context.Background(), source)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(items))
	}
	if gotUserAgent != "DebtOfWar/2.0 (test)" {
		t.Errorf("Expected custom User-Agent header, got %q", gotUserAgent)
	}
}

func TestFetcher_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	source := Source{Name: "Broken Wire", URL: server.URL}

	if _, err := fetcher.Fetch(context.Background(), source); err == nil {
		t.Errorf("Expected error for non-200 response")
	}
}

func TestFetcher_FetchAll(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFixture))
	}))
	defer okServer.Close()

	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer badServer.Close()

	disabled := false
	sources := []Source{
		{Name: "OK Wire", URL: okServer.URL, MaxItems: 30},
		{Name: "Bad Wire", URL: badServer.URL, MaxItems: 30},
		{Name: "Disabled Wire", URL: badServer.URL, Enabled: &disabled},
	}

	fetcher := NewFetcher(nil, "test-agent")
	results := fetcher.FetchAll(context.Background(), sources)

	// Disabled sources are skipped entirely.
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Source != "OK Wire" || results[1].Source != "Bad Wire" {
		t.Errorf("Expected results in source order, got %s then %s", results[0].Source, results[1].Source)
	}
	if results[0].Err != nil {
		t.Errorf("Expected no error from healthy source, got: %v", results[0].Err)
	}
	if len(results[0].Items) != 3 {
		t.Errorf("Expected 3 items from healthy source, got %d", len(results[0].Items))
	}
	if results[1].Err == nil {
		t.Errorf("Expected error from failing source")
	}
	if len(results[1].Items) != 0 {
		t.Errorf("Expected no items from failing source, got %d", len(results[1].Items))
	}
}
