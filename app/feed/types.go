package feed

// Source is one RSS/Atom feed the tracker ingests.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	MaxItems int    `yaml:"max_items"`
	Enabled  *bool  `yaml:"enabled"`
}

// Active reports whether the source should be fetched. Sources are enabled
// unless the configuration says otherwise.
func (s Source) Active() bool {
	return s.Enabled == nil || *s.Enabled
}
