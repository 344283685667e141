package feed

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultMaxItems = 30

// DefaultSources returns the built-in wire and world-news feeds used when no
// sources file is configured.
func DefaultSources() []Source {
	return []Source{
		{Name: "Reuters World", URL: "https://feeds.reuters.com/Reuters/worldNews"},
		{Name: "Reuters Top", URL: "https://feeds.reuters.com/reuters/topNews"},
		{Name: "BBC World", URL: "http://feeds.bbci.co.uk/news/world/rss.xml"},
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml"},
		{Name: "AP Top News", URL: "https://rsshub.app/apnews/topics/apf-topnews"},
		{Name: "France24", URL: "https://www.france24.com/en/rss"},
		{Name: "Defense News", URL: "https://www.defensenews.com/arc/outboundfeeds/rss/?outputType=xml"},
		{Name: "Middle East Eye", URL: "https://www.middleeasteye.net/rss"},
	}
}

// LoadSources reads the sources file, falling back to the built-in list when
// path is empty.
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		return normalizeSources(DefaultSources())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s defines no sources", path)
	}

	sources, err := normalizeSources(file.Sources)
	if err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	for _, source := range sources {
		slog.Debug("Source configured", "name", source.Name, "url", source.URL, "max_items", source.MaxItems, "enabled", source.Active())
	}

	return sources, nil
}

func normalizeSources(sources []Source) ([]Source, error) {
	seen := make(map[string]bool, len(sources))
	for i := range sources {
		if sources[i].Name == "" {
			return nil, fmt.Errorf("source at index %d: name is required", i)
		}
		if sources[i].URL == "" {
			return nil, fmt.Errorf("source %s: url is required", sources[i].Name)
		}
		if sources[i].MaxItems < 0 {
			return nil, fmt.Errorf("source %s: max_items must be non-negative", sources[i].Name)
		}
		if sources[i].MaxItems == 0 {
			sources[i].MaxItems = defaultMaxItems
		}
		if seen[sources[i].Name] {
			return nil, fmt.Errorf("duplicate source name: %s", sources[i].Name)
		}
		seen[sources[i].Name] = true
	}
	return sources, nil
}
