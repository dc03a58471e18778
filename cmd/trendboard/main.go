package main

import (
	"os"

	"github.com/spektr-org/trendboard/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
