// ABOUTME: Command line configuration for the twospace driver
// ABOUTME: Read with goconfig from flags, environment and config file

package configuration

import (
	"fmt"

	"github.com/prateek/twospace/heap"
	"github.com/prateek/twospace/heapdump"
)

type Configuration struct {
	Script        string `usage:"TOML program to run, the built-in demo when empty"`
	SemispaceSize int    `usage:"chunks per semispace"`
	RootStackSize int    `usage:"maximum root stack depth"`
	Format        string `usage:"dump format: cbor, json, text or yaml"`
	Output        string `usage:"directory to write dumps to, stdout when empty"`
	Analyze       bool   `usage:"print retained sizes of live chunks after the run"`
	Top           int    `usage:"number of chunks listed by the analysis"`
	Verbose       int    `usage:"log verbosity: 0 notice, 1 info, 2 debug"`
	LogFile       string `usage:"log file, stderr when empty"`
	Version       bool   `usage:"show version and exit"`
	ShowConfig    bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		SemispaceSize: heap.DefaultSemispaceSize,
		RootStackSize: heap.DefaultRootStackSize,
		Format:        "text",
		Top:           10,
	}
}

// Heap returns the collector configuration.
func (c Configuration) Heap() heap.Config {
	return heap.Config{
		SemispaceSize: c.SemispaceSize,
		RootStackSize: c.RootStackSize,
	}
}

func (c Configuration) Validate() error {
	if err := c.Heap().Validate(); err != nil {
		return err
	}
	if _, err := heapdump.Lookup(c.Format); err != nil {
		return err
	}
	if c.Top < 0 {
		return fmt.Errorf("top %d: must not be negative", c.Top)
	}
	return nil
}
