package picstash

// Config holds all configuration for a picstash server.
type Config struct {
	Addr          string // Listen address (default ":3000")
	DatabaseURL   string // Required: SQLite database location
	DataDir       string // Directory for original and thumbnail blobs (default "data/images")
	SessionSecret string // Required: cookie session secret for upload flash messages

	QueueDepth int // Thumbnail work queue buffer (default 64)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DataDir == "" {
		c.DataDir = "data/images"
	}
	if c.QueueDepth == 0 {
		c.QueueDepth = 64
	}
}
