package actpool

// DefaultConfig is the default config for actpool
var DefaultConfig = Config{
	MaxNumTransfersPerPool: 8192,
}

// Config is the actpool config
type Config struct {
	// MaxNumTransfersPerPool indicates maximum number of pending transfers the whole actpool can hold
	MaxNumTransfersPerPool uint64 `yaml:"maxNumTransfersPerPool"`
}
