// Package cli wires flags, signals and output around one probe run.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/webvet/webvet/internal/config"
	"github.com/webvet/webvet/internal/probe"
	"github.com/webvet/webvet/internal/report"
	"github.com/webvet/webvet/internal/runner"
	"github.com/webvet/webvet/internal/transport"
	"github.com/webvet/webvet/internal/ui"
)

const version = "1.0.0"

var (
	cfg config.Config

	// set by run when the report's fail set is non-empty
	vulnerabilitiesFound bool
)

var rootCmd = &cobra.Command{
	Use:     "webvet [flags]",
	Short:   "Black-box web vulnerability probe runner",
	Version: version,
	Long: `webvet drives a fixed sequence of adversarial HTTP requests against a
target web application and classifies each response as a confirmed
protection, an indicated vulnerability, or inconclusive. Detection is
heuristic string matching on response content, not exploit
confirmation.`,
	Example: `  webvet -u http://localhost:8080/
  webvet -u https://staging.example.com --profile app.yaml -o report.json
  webvet -u http://localhost:8080/ --only security-headers,info-disclosure
  webvet -u http://localhost:8080/ --parallel --html report.html`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cfg = config.Default()

	f := rootCmd.Flags()
	f.StringVarP(&cfg.TargetURL, "url", "u", cfg.TargetURL, "Target base URL")
	f.IntVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout in seconds (env: WEBVET_TIMEOUT)")
	f.StringVar(&cfg.ProfilePath, "profile", "", "YAML profile with target endpoints and markers")
	f.StringVarP(&cfg.OutputFile, "output", "o", "", "JSON report file")
	f.StringVar(&cfg.HTMLReport, "html", "", "HTML report file")
	f.BoolVar(&cfg.Parallel, "parallel", false, "Run session-free probes on independent sessions")
	f.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Max requests per second (0=unlimited, env: WEBVET_RATE_LIMIT)")
	f.IntVar(&cfg.MaxResponseMB, "max-response-mb", cfg.MaxResponseMB, "Max response body size in MB")
	f.StringVar(&cfg.UserAgent, "user-agent", "", "Custom User-Agent string")
	f.StringSliceVar(&cfg.Only, "only", nil, "Run only these probe categories (comma-separated)")
	f.StringSliceVar(&cfg.Skip, "skip", nil, "Skip these probe categories (comma-separated)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error (env: WEBVET_LOG_LEVEL)")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose diagnostics")
	f.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command and maps the run outcome to the
// process exit status: 0 when the fail set is empty, 1 otherwise.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	if vulnerabilitiesFound {
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, args []string) error {
	if err := config.Validate(&cfg); err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if cfg.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	styles := ui.DefaultStyles()
	if cfg.NoColor {
		styles = ui.PlainStyles()
	}
	printer := ui.NewPrinter(os.Stdout, styles)
	printer.Banner(version)

	prof := probe.DefaultProfile()
	if cfg.ProfilePath != "" {
		prof, err = probe.LoadProfile(cfg.ProfilePath)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
	}

	probes, err := probe.Filter(probe.Registry(prof), cfg.Only, cfg.Skip)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	newSession := func() (*transport.Session, error) {
		return transport.NewSession(cfg.TargetURL, transport.Options{
			Timeout:      timeout,
			RateLimit:    cfg.RateLimit,
			MaxBodyBytes: int64(cfg.MaxResponseMB) << 20,
			UserAgent:    cfg.UserAgent,
			Logger:       logger,
		})
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	printer.Config(cfg.TargetURL, timeout, len(probes), cfg.Parallel)

	rep := runner.New(runner.Config{
		Session:        session,
		Probes:         probes,
		Parallel:       cfg.Parallel,
		SessionFactory: newSession,
		OnFinding:      printer.Finding,
		Logger:         logger,
	}).Run(cmd.Context())

	printer.Summary(rep)

	if cfg.OutputFile != "" {
		if err := report.SaveJSON(rep, cfg.OutputFile); err != nil {
			logger.WithError(err).Error("failed to save JSON report")
		} else {
			printer.Info("JSON report saved: " + cfg.OutputFile)
		}
	}
	if cfg.HTMLReport != "" {
		if err := report.GenerateHTML(rep, cfg.HTMLReport); err != nil {
			logger.WithError(err).Error("failed to generate HTML report")
		} else {
			printer.Info("HTML report saved: " + cfg.HTMLReport)
		}
	}

	vulnerabilitiesFound = !rep.Success()
	return nil
}
