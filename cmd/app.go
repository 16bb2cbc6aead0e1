// Package cmd implements the subcommands of the clip command line.
package cmd

import (
	"flag"

	"github.com/etnz/clip"
	"github.com/etnz/clip/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&shellCmd{}, "portfolio")
	c.Register(&runCmd{}, "portfolio")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "clip.yaml", "Path to the YAML configuration file")
var currency = flag.String("currency", "", "ISO 4217 code of the prices, overrides the configuration")
var average = flag.String("average", "", "Average price method (weighted, pairwise), overrides the configuration")
var Verbose = flag.Bool("v", false, "Log debug messages")

// loadConfig reads the .env file, the configuration file and the
// environment, then applies the global flags on top.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	c, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *currency != "" {
		c.Currency = *currency
	}
	if *average != "" {
		c.Average = *average
	}
	if *Verbose {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newPortfolio creates the empty portfolio of a session. A non empty owner
// overrides the configured one.
func newPortfolio(c *config.Config, owner string) *clip.Portfolio {
	if owner == "" {
		owner = c.Owner
	}
	return clip.NewPortfolio(owner, c.Currency, c.Method())
}
