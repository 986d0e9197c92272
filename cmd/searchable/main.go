package main

import (
	"os"

	"github.com/ministore/searchable/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
