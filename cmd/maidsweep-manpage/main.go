package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/maidsweep/cmd/maidsweep"
	"github.com/arthur-debert/maidsweep/internal/version"
)

func main() {
	rootCmd := maidsweep.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MAIDSWEEP",
		Section: "1",
		Source:  "maidsweep " + version.Version,
		Manual:  "maidsweep manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
