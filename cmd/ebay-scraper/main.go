// Package main is the entry point for the ebay-scraper CLI.
package main

import (
	"os"

	"github.com/pip3-kill-me/ebay-scraper/cmd/ebay-scraper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
