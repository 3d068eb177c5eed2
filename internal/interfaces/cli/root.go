// Package cli implements the keggmatch command tree: single-compound match,
// CSV batch matching and the API server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openmetab/keggmatch/internal/application/matching"
	"github.com/openmetab/keggmatch/internal/config"
	"github.com/openmetab/keggmatch/internal/infrastructure/kegg"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config *config.Config
	// ConfigPath is the file the config was loaded from; empty when the
	// config came from environment variables only.
	ConfigPath   string
	Logger       logging.Logger
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "keggmatch",
		Short: "Map metabolite names and formulas to KEGG compound IDs",
		Long: "keggmatch resolves free-text metabolite names with molecular formulas\n" +
			"to KEGG compound identifiers, scoring candidates by name similarity\n" +
			"and flagging uncertain matches for human verification.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./keggmatch.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.DurationVar(&opts.Timeout, "timeout", 0, "global operation timeout (0 = none)")

	cmd.AddCommand(
		NewMatchCmd(),
		NewBatchCmd(),
		NewServeCmd(),
	)

	return cmd
}

// persistentPreRun initializes config and logger, then stores CLIContext on
// the command context.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, cfgPath, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		ConfigPath:   cfgPath,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
		Timeout:      opts.Timeout,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flag path, then well-known
// file locations, then environment variables only. It returns the path the
// config file was read from, or "" for the env-only case.
func initConfig(opts *RootOptions) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		return cfg, opts.ConfigPath, err
	}

	searchPaths := []string{"./keggmatch.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".keggmatch", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/keggmatch/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			cfg, err := config.Load(p)
			return cfg, p, err
		}
	}

	cfg, err := config.LoadFromEnv()
	return cfg, "", err
}

// initLogger creates a logger configured for CLI usage: console format on
// stderr so stdout stays clean for command output.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, fmt.Errorf("CLI context not initialized")
	}
	return cliCtx, nil
}

// buildService wires the KEGG client and matching service from the loaded
// configuration. threshold overrides the configured value when positive.
func buildService(cliCtx *CLIContext, threshold float64) (*matching.Service, error) {
	clientOpts := []kegg.Option{
		kegg.WithBaseURL(cliCtx.Config.KEGG.BaseURL),
		kegg.WithTimeout(cliCtx.Config.KEGG.Timeout),
		kegg.WithLogger(cliCtx.Logger.Named("kegg")),
	}
	if ua := cliCtx.Config.KEGG.UserAgent; ua != "" {
		clientOpts = append(clientOpts, kegg.WithUserAgent(ua))
	}
	db, err := kegg.NewClient(clientOpts...)
	if err != nil {
		return nil, err
	}

	if threshold <= 0 {
		threshold = cliCtx.Config.Matcher.Threshold
	}
	return matching.NewService(db,
		matching.WithThreshold(threshold),
		matching.WithLogger(cliCtx.Logger.Named("matching")),
	)
}

// commandContext returns the command context, bounded by the global timeout
// flag when one was given.
func commandContext(cmd *cobra.Command, cliCtx *CLIContext) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if cliCtx.Timeout > 0 {
		return context.WithTimeout(ctx, cliCtx.Timeout)
	}
	return context.WithCancel(ctx)
}

// Execute runs the CLI. Errors are returned for the caller to report, so a
// failed command is printed exactly once.
func Execute() error {
	return NewRootCommand().Execute()
}

// PrintResult outputs data in the format selected by the --output flag.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd, data)
	}

	switch strings.ToLower(cliCtx.OutputFormat) {
	case "json":
		return printJSON(cmd, data)
	case "table":
		return printTable(cmd, data)
	default:
		return printText(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// printTable outputs data as a table when it provides one, otherwise falls
// back to text.
func printTable(cmd *cobra.Command, data interface{}) error {
	type tableProvider interface {
		TableHeaders() []string
		TableRows() [][]string
	}
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(cmd, data)
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(padRight(h, colWidths[i]))
	}
	sb.WriteString("\n")
	for i, w := range colWidths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i := 0; i < len(headers); i++ {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			sb.WriteString(padRight(val, colWidths[i]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
