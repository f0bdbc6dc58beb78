// Package main is the entry point for the reelctl application.
package main

import (
	"github.com/reelctl/reelctl/cmd"
	"github.com/reelctl/reelctl/config"
	"github.com/reelctl/reelctl/internal/cache"
	"github.com/reelctl/reelctl/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
