package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	var configPath string
	root := &cobra.Command{
		Use:           "checkmycode",
		Short:         "Submit code to a multi-reviewer evaluation service and report the consensus",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./checkmycode.yaml if present)")

	root.AddCommand(newEvalCmd(&configPath))
	root.AddCommand(newNormalizeCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
