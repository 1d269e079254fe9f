package rope

// config holds construction parameters shared by every version of a rope.
type config struct {
	maxLeafSize int
	rebalance   bool
}

var defaultConfig = &config{
	maxLeafSize: DefaultMaxLeafSize,
	rebalance:   true,
}

// Option is a functional option for configuring a Rope.
type Option func(*config)

// WithMaxLeafSize sets the largest fragment stored in a single leaf.
// Values below MinMaxLeafSize are raised to it.
func WithMaxLeafSize(n int) Option {
	return func(c *config) {
		if n < MinMaxLeafSize {
			n = MinMaxLeafSize
		}
		c.maxLeafSize = n
	}
}

// WithRebalance enables or disables automatic rebalancing after edits.
// With rebalancing off, repeated edits at one position can grow the tree
// to a depth proportional to the number of edits.
func WithRebalance(enabled bool) Option {
	return func(c *config) {
		c.rebalance = enabled
	}
}

// newConfig applies opts to a copy of the defaults.
func newConfig(opts []Option) *config {
	if len(opts) == 0 {
		return defaultConfig
	}

	c := *defaultConfig
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}
