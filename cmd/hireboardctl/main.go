// Package main implements hireboardctl, which runs the filter and analytics
// engines over a local JSON or YAML fixture file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hireboard"
	"github.com/kailas-cloud/hireboard/internal/fixture"
	logpkg "github.com/kailas-cloud/hireboard/internal/logger"
	"github.com/kailas-cloud/hireboard/internal/version"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	file    string
	verbose bool
	logger  *zap.Logger
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "hireboardctl",
		Short:         "Query job-search records from a fixture file",
		Long:          "hireboardctl filters, facets and aggregates job applications, postings and interviewers stored in a JSON or YAML file.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			l, err := logpkg.NewCLI(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Path to a .json, .yaml or .yml record list (required)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	if err := cmd.MarkPersistentFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	cmd.AddCommand(newFilterCmd(opts), newAnalyticsCmd(opts), newFacetsCmd(opts))
	return cmd
}

// records loads and normalizes the fixture.
func (o *rootOptions) records() ([]hireboard.Record, error) {
	raw, err := fixture.ReadFile(o.file)
	if err != nil {
		return nil, err
	}
	recs := hireboard.NewRecords(raw)
	o.logger.Debug("loaded records", zap.String("file", o.file), zap.Int("count", len(recs)))
	return recs, nil
}

// parsePairs splits repeated key=value flags.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s %q: want field=value", flag, p)
		}
		out[k] = v
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
