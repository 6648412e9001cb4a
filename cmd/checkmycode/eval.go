package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maverickalo/check-my-code/internal/client"
	"github.com/maverickalo/check-my-code/internal/envelope"
	"github.com/maverickalo/check-my-code/internal/fixes"
	"github.com/maverickalo/check-my-code/internal/grade"
	"github.com/maverickalo/check-my-code/internal/present"
	"github.com/maverickalo/check-my-code/internal/render"
	"github.com/maverickalo/check-my-code/internal/session"
	"github.com/maverickalo/check-my-code/internal/snippet"
	"github.com/maverickalo/check-my-code/internal/submit"
)

type evalFlags struct {
	configPath *string
	format     string
	out        string
	severity   string
	category   string
	language   string
	redact     bool
	apiURL     string
	timeout    time.Duration
	hasTimeout bool
	failBelow  string
	fixesOut   string
	repair     bool
	verbose    bool
	rules      string

	// evaluator replaces the HTTP client in tests.
	evaluator client.Evaluator
	stdin     io.Reader
	stdout    io.Writer
}

func newEvalCmd(configPath *string) *cobra.Command {
	f := &evalFlags{configPath: configPath, stdin: os.Stdin, stdout: os.Stdout}

	cmd := &cobra.Command{
		Use:   "eval <file|->",
		Short: "Evaluate a code snippet and render the consensus report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.hasTimeout = cmd.Flags().Changed("timeout")
			return runEval(cmd.Context(), args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "text", "Output format: text, md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.severity, "severity", "all", "Show only issues of this severity")
	flags.StringVar(&f.category, "category", "all", "Show only issues of this category")
	flags.StringVar(&f.language, "language", "", "Snippet language (default: from file extension)")
	flags.BoolVar(&f.redact, "redact", true, "Redact credentials before sending the snippet")
	flags.StringVar(&f.apiURL, "api-url", "", "Evaluation endpoint (overrides config)")
	flags.DurationVar(&f.timeout, "timeout", 0, "Request timeout (overrides config)")
	flags.StringVar(&f.failBelow, "fail-below", "", "Exit 2 if the grade is below this letter (A-F)")
	flags.StringVar(&f.fixesOut, "fixes-out", "", "Write suggested fixes as unified diffs")
	flags.BoolVar(&f.repair, "repair", false, "Repair malformed embedded evaluation JSON")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")
	flags.StringVar(&f.rules, "rules", "", "YAML file of suggestion icon rules (default: built-in)")

	return cmd
}

func runEval(ctx context.Context, path string, f *evalFlags) error {
	configPath := ""
	if f.configPath != nil {
		configPath = *f.configPath
	}
	cfg, err := setup(configPath, f.verbose)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(f.format)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}
	if f.failBelow != "" && grade.Rank(strings.ToUpper(f.failBelow)) < 0 {
		return exitError(exitInput, "invalid --fail-below %q (want A, B, C, D or F)", f.failBelow)
	}

	rules, err := loadRules(f.rules)
	if err != nil {
		return err
	}

	snip, err := snippet.Load(path, f.stdin)
	if err != nil {
		return exitError(exitInput, "failed to load snippet: %v", err)
	}
	if f.language != "" {
		if !snippet.ValidLanguage(f.language) {
			return exitError(exitInput, "unsupported language %q (want one of %s)", f.language, strings.Join(snippet.Languages, ", "))
		}
		snip.Language = f.language
	}
	if snip.Code == "" {
		return exitError(exitInput, "%s", client.ErrEmptyCode)
	}
	log.WithFields(log.Fields{
		"source":   snip.Source,
		"language": snip.Language,
		"lines":    snip.Lines,
		"hash":     snip.Hash,
	}).Debug("loaded snippet")

	ev := f.evaluator
	if ev == nil {
		url, timeout := cfg.APIURL, cfg.Timeout
		if f.apiURL != "" {
			url = f.apiURL
		}
		if f.hasTimeout {
			timeout = f.timeout
		}
		ev = client.NewHTTP(url, timeout)
		log.WithField("url", url).Debug("using evaluation endpoint")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	p := &submit.Pipeline{
		Evaluator: ev,
		Unwrapper: envelope.Unwrapper{Repair: f.repair},
		Redact:    f.redact,
	}
	sess := session.New()
	if _, err := sess.Submit(ctx, p, snip.Code); err != nil {
		return err
	}
	outcome, _ := sess.Outcome()

	opts := render.Options{
		Options: present.Options{Severity: f.severity, Category: f.category, Rules: rules},
		Color:   format == render.FormatText && f.out == "" && f.stdout == os.Stdout && colorEnabled(),
	}
	data, err := render.Outcome(format, outcome, opts)
	if err != nil {
		return err
	}
	if err := writeOutput(f.stdout, f.out, data); err != nil {
		return err
	}

	if !outcome.Succeeded() {
		return exitError(exitTransport, "evaluation failed: %s", outcome.Failure.Error)
	}
	res := outcome.Result

	if f.fixesOut != "" {
		fx := fixes.Collect(res.Issues)
		log.WithField("count", len(fx)).Debugf("writing fixes to %s", f.fixesOut)
		if err := fixes.WriteFile(fx, f.fixesOut); err != nil {
			return err
		}
	}

	if f.failBelow != "" {
		got := grade.Letter(res.Representative()).Letter
		want := strings.ToUpper(f.failBelow)
		if grade.Rank(got) < grade.Rank(want) {
			return exitError(exitBelowGrade, "grade %s is below %s", got, want)
		}
	}
	return nil
}
