package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/maverickalo/check-my-code/internal/client"
	"github.com/maverickalo/check-my-code/internal/envelope"
	"github.com/maverickalo/check-my-code/internal/metrics"
	"github.com/maverickalo/check-my-code/internal/server"
	"github.com/maverickalo/check-my-code/internal/submit"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	configPath *string
	addr       string
	origins    []string
	apiURL     string
	timeout    time.Duration
	repair     bool
	redact     bool
	rules      string
	verbose    bool
}

func newServeCmd(configPath *string) *cobra.Command {
	f := &serveFlags{configPath: configPath}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.addr, "addr", "", "Listen address (overrides config)")
	flags.StringSliceVar(&f.origins, "allowed-origins", nil, "CORS allowed origins (overrides config)")
	flags.StringVar(&f.apiURL, "api-url", "", "Evaluation endpoint (overrides config)")
	flags.DurationVar(&f.timeout, "timeout", 0, "Request timeout (overrides config)")
	flags.BoolVar(&f.repair, "repair", false, "Repair malformed embedded evaluation JSON")
	flags.BoolVar(&f.redact, "redact", true, "Redact credentials before forwarding snippets")
	flags.StringVar(&f.rules, "rules", "", "YAML file of suggestion icon rules (default: built-in)")
	flags.BoolVar(&f.verbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runServe(ctx context.Context, f *serveFlags) error {
	configPath := ""
	if f.configPath != nil {
		configPath = *f.configPath
	}
	cfg, err := setup(configPath, f.verbose)
	if err != nil {
		return err
	}
	if f.addr != "" {
		cfg.ListenAddr = f.addr
	}
	if len(f.origins) > 0 {
		cfg.AllowedOrigins = f.origins
	}
	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout
	}
	if err := cfg.Validate(); err != nil {
		return exitError(exitInput, "invalid config: %v", err)
	}
	rules, err := loadRules(f.rules)
	if err != nil {
		return err
	}

	rec, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	srv := server.New(server.Options{
		Pipeline: &submit.Pipeline{
			Evaluator: client.NewHTTP(cfg.APIURL, cfg.Timeout),
			Unwrapper: envelope.Unwrapper{Repair: f.repair},
			Redact:    f.redact,
			Metrics:   rec,
		},
		Metrics:        rec,
		AllowedOrigins: cfg.AllowedOrigins,
		Rules:          rules,
	})
	httpSrv := srv.HTTPServer(cfg.ListenAddr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(log.Fields{
			"addr":     cfg.ListenAddr,
			"upstream": cfg.APIURL,
			"origins":  cfg.AllowedOrigins,
		}).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
