package config

import (
	"errors"
	"fmt"

	"github.com/tusharlock10/sentinel-hwreq/internal/collect"
)

// Config carries the CLI inputs for one collection run.
type Config struct {
	OutPath  string   // explicit output file; empty means derive from the HWID
	Features []string // requested feature names; duplicates allowed
	Customer string   // free-form customer label; may be empty
	Profile  collect.Profile
	Version  string // set from ldflags at build time; empty in dev builds
}

// Validate checks the flag values. Fails fast on the first error.
func (c *Config) Validate() error {
	if !c.Profile.Valid() {
		return fmt.Errorf("unknown profile %q (expected %q or %q)",
			c.Profile, collect.ProfileGPU, collect.ProfileMachine)
	}
	for _, f := range c.Features {
		if f == "" {
			return errors.New("feature names must not be empty")
		}
	}
	return nil
}
