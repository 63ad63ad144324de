package main

import (
	"os"
	_ "time/tzdata"

	"github.com/ellavondegurechaff/progression/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := cmd.Execute(version, commit); err != nil {
		os.Exit(1)
	}
}
