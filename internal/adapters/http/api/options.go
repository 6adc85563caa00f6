package api

// Upload limits applied when no option overrides them.
const (
	defaultMaxImageBytes  = 10 << 20
	defaultMaxBatchImages = 20
)

type serverConfig struct {
	maxImageBytes  int64
	maxBatchImages int
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

// WithMaxImageBytes caps the size of one uploaded screenshot.
func WithMaxImageBytes(n int64) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxImageBytes = n
		}
	}
}

// WithMaxBatchImages caps how many screenshots one upload may carry.
func WithMaxBatchImages(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBatchImages = n
		}
	}
}
