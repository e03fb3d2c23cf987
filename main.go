package main

import (
	"os"

	"github.com/matheuscscp/udp-inject/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
