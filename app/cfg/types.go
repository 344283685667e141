package cfg

type Cfg struct {
	// Storage configuration
	DataDir string
	DBPath  string

	// Application configuration
	FeedsFile     string
	Port          string
	WorkerCount   int
	FetchInterval int
	FetchTimeout  int
	APIAccessKey  string
	Once          bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
