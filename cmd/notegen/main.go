package main

import (
	"os"

	"github.com/dgallion1/notegen/cmd/notegen/cmd"
)

var Version = "dev"

func main() {
	if err := cmd.Execute(Version); err != nil {
		os.Exit(1)
	}
}
