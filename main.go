package main

import (
	"os"

	"github.com/mrlokans/readvoyage/internal/cli"
	"github.com/mrlokans/readvoyage/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()

	root := cli.NewRootCmd(cfg, Version+" ("+Commit+")")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
