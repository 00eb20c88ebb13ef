// ABOUTME: Construction-time configuration for a collector
// ABOUTME: Sizes are fixed for the collector's lifetime

package heap

import (
	"fmt"
	"math"

	"github.com/tliron/commonlog"
)

const (
	// DefaultSemispaceSize is the number of chunks per semispace
	DefaultSemispaceSize = 1024

	// DefaultRootStackSize is the maximum number of roots
	DefaultRootStackSize = 512
)

// Config configures a Collector.
type Config struct {
	SemispaceSize int              // chunks per semispace
	RootStackSize int              // maximum root stack depth
	Logger        commonlog.Logger // nil selects the "twospace.heap" logger
}

// DefaultConfig returns the default sizes.
func DefaultConfig() Config {
	return Config{
		SemispaceSize: DefaultSemispaceSize,
		RootStackSize: DefaultRootStackSize,
	}
}

// Validate reports whether the sizes can back a collector.
func (c Config) Validate() error {
	if c.SemispaceSize <= 0 || uint64(c.SemispaceSize) > math.MaxUint32 {
		return fmt.Errorf("semispace size %d: %w", c.SemispaceSize, ErrInvalidConfig)
	}
	if c.RootStackSize <= 0 || uint64(c.RootStackSize) > math.MaxUint32 {
		return fmt.Errorf("root stack size %d: %w", c.RootStackSize, ErrInvalidConfig)
	}
	return nil
}
