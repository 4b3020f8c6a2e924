package main

import (
	"fmt"
	"os"

	"github.com/lox/minipoker/internal/config"
)

// ConfigCmd prints the default experiment so it can be edited and passed
// back with --config.
type ConfigCmd struct{}

func (c *ConfigCmd) Run() error {
	_, err := fmt.Fprint(os.Stdout, config.DefaultSource)
	return err
}
