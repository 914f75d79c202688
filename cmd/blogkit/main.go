package main

import (
	"os"

	"github.com/goliatone/go-blogkit/cmd/blogkit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.NewApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
