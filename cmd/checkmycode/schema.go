package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/maverickalo/check-my-code/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the normalized evaluation result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file path (default: stdout)")
	return cmd
}

func runSchema(w io.Writer, out string) error {
	data, err := schema.JSONSchema()
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stdout
	}
	return writeOutput(w, out, data)
}
