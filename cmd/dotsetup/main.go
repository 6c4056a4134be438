package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotsetup/internal/cli"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.GetStyle("Error").Render("Error:"), err)
		os.Exit(errors.ExitCode(err))
	}
}
