package main

import (
	"os"

	"github.com/webvet/webvet/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
