package main

import (
	"os"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/buildinfo"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/commands"
)

func main() {
	if err := commands.NewRootCommand(buildinfo.String()).Execute(); err != nil {
		os.Exit(1)
	}
}
