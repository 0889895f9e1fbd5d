// Package main is the entry point for the anilens application.
package main

import (
	"github.com/anilens-cli/anilens/cmd"
	"github.com/anilens-cli/anilens/config"
	"github.com/anilens-cli/anilens/internal/cache"
	"github.com/anilens-cli/anilens/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Background pruning of expired cache artifacts.
	go cache.CollectGarbage()

	cmd.Execute()
}
