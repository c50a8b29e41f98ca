// Package main is the entry point for the jrand-gen application.
package main

import (
	"log"
	"os"

	"github.com/medxops/jrand-gen/internal/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	app := cli.New(version, commit, date)

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
