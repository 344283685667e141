package feed

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/debtofwar/tracker/app/conflict"
)

// Minimum spacing between request starts, shared across all sources.
const politenessInterval = 500 * time.Millisecond

// FetchResult pairs a source with whatever its fetch produced. FetchAll
// returns results in source-list order so merged output is deterministic.
type FetchResult struct {
	Source string
	Items  []conflict.RawItem
	Err    error
}

// Fetcher downloads feeds and normalizes their entries into pipeline input.
type Fetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	limiter   *rate.Limiter
	sanitizer *bluemonday.Policy
	userAgent string
}

func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{
		client:    client,
		parser:    gofeed.NewParser(),
		limiter:   rate.NewLimiter(rate.Every(politenessInterval), 1),
		sanitizer: bluemonday.StrictPolicy(),
		userAgent: userAgent,
	}
}

// FetchAll fetches every active source concurrently. The shared limiter
// spaces out request starts so upstreams are not hit in one burst. A failed
// source contributes an empty result, never an error for the whole run.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []FetchResult {
	active := make([]Source, 0, len(sources))
	for _, source := range sources {
		if source.Active() {
			active = append(active, source)
		}
	}

	results := make([]FetchResult, len(active))
	var wg sync.WaitGroup
	for i, source := range active {
		wg.Add(1)
		go func(i int, source Source) {
			defer wg.Done()
			items, err := f.Fetch(ctx, source)
			results[i] = FetchResult{Source: source.Name, Items: items, Err: err}
		}(i, source)
	}
	wg.Wait()

	return results
}

// Fetch downloads and normalizes a single source.
func (f *Fetcher) Fetch(ctx context.Context, source Source) ([]conflict.RawItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, source.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return f.Parse(data, source)
}

// Parse converts raw feed bytes into normalized items, capping the per-source
// item count and stripping markup from descriptions.
func (f *Fetcher) Parse(data []byte, source Source) ([]conflict.RawItem, error) {
	parsed, err := f.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	limit := source.MaxItems
	if limit <= 0 || limit > len(parsed.Items) {
		limit = len(parsed.Items)
	}

	items := make([]conflict.RawItem, 0, limit)
	for _, item := range parsed.Items[:limit] {
		if item == nil {
			continue
		}
		items = append(items, conflict.RawItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Description: f.stripMarkup(item.Description),
			Published:   item.Published,
			Source:      source.Name,
		})
	}

	return items, nil
}

// stripMarkup reduces feed HTML to plain text: tags removed, entities
// decoded, surrounding whitespace trimmed.
func (f *Fetcher) stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(f.sanitizer.Sanitize(s)))
}
