package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/maverickalo/check-my-code/internal/envelope"
	"github.com/maverickalo/check-my-code/internal/present"
	"github.com/maverickalo/check-my-code/internal/render"
	"github.com/maverickalo/check-my-code/internal/review"
	"github.com/maverickalo/check-my-code/internal/schema"
	"github.com/maverickalo/check-my-code/internal/submit"
)

type normalizeFlags struct {
	configPath *string
	format     string
	out        string
	severity   string
	category   string
	repair     bool
	strict     bool
	rules      string
	verbose    bool

	stdin  io.Reader
	stdout io.Writer
}

func newNormalizeCmd(configPath *string) *cobra.Command {
	f := &normalizeFlags{configPath: configPath, stdin: os.Stdin, stdout: os.Stdout}

	cmd := &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Normalize a saved service response and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json, md or text")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.severity, "severity", "all", "Show only issues of this severity")
	flags.StringVar(&f.category, "category", "all", "Show only issues of this category")
	flags.BoolVar(&f.repair, "repair", false, "Repair malformed embedded evaluation JSON")
	flags.BoolVar(&f.strict, "strict", false, "Exit 3 if the normalized result violates the result schema")
	flags.StringVar(&f.rules, "rules", "", "YAML file of suggestion icon rules (default: built-in)")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")

	return cmd
}

func runNormalize(path string, f *normalizeFlags) error {
	configPath := ""
	if f.configPath != nil {
		configPath = *f.configPath
	}
	if _, err := setup(configPath, f.verbose); err != nil {
		return err
	}

	format, err := render.ParseFormat(f.format)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}
	rules, err := loadRules(f.rules)
	if err != nil {
		return err
	}

	raw, err := readInput(path, f.stdin)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}
	if !gjson.ValidBytes(raw) {
		return exitError(exitInput, "%s is not valid JSON", path)
	}

	p := &submit.Pipeline{Unwrapper: envelope.Unwrapper{Repair: f.repair}}
	res := p.Normalize(raw)

	if violations := schema.Validate(&res); len(violations) > 0 {
		for _, v := range violations {
			log.WithField("path", v.Path).Warn(v.Message)
		}
		if f.strict {
			return exitError(exitInput, "normalized result has %d schema violation(s)", len(violations))
		}
	}

	opts := render.Options{
		Options: present.Options{Severity: f.severity, Category: f.category, Rules: rules},
		Color:   format == render.FormatText && f.out == "" && f.stdout == os.Stdout && colorEnabled(),
	}
	data, err := render.Outcome(format, review.ResultOutcome(res), opts)
	if err != nil {
		return err
	}
	return writeOutput(f.stdout, f.out, data)
}
