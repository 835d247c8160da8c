package main

import (
	"os"

	"github.com/ariel-frischer/shipit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
