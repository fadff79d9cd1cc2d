// Package main provides the configlint CLI binary.
// It validates JSON configuration files against a JSON Schema (draft
// 2020-12, format assertions enabled), printing one success line per file
// and stopping the whole run at the first failure.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bc-dunia/configlint/internal/logging"
	"github.com/bc-dunia/configlint/internal/otel"
	"github.com/bc-dunia/configlint/internal/validation"
)

// pathList accumulates repeatable -f occurrences; each occurrence may carry
// a comma-separated list of paths. Order is preserved.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ",")
}

func (p *pathList) Set(value string) error {
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*p = append(*p, s)
		}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("configlint", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var schemaPath string
	fs.StringVar(&schemaPath, "s", "", "path to the JSON Schema file")
	fs.StringVar(&schemaPath, "schema", "", "path to the JSON Schema file (same as -s)")

	var files pathList
	fs.Var(&files, "f", "JSON config file to validate (repeatable)")
	fs.Var(&files, "json-files", "JSON config files to validate (same as -f)")

	strict := fs.Bool("strict", false, "run data-sync semantic checks after schema validation")
	output := fs.String("output", "text", "failure output format: text or json")
	verbose := fs.Bool("v", false, "enable verbose diagnostics on stderr")
	metricsExporter := fs.String("metrics", "none", "metrics exporter: none, stdout, otlp-grpc or otlp-http")
	otlpEndpoint := fs.String("otlp-endpoint", "", "OTLP endpoint for the otlp-grpc and otlp-http exporters")
	otlpInsecure := fs.Bool("otlp-insecure", false, "disable TLS for OTLP connections")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if schemaPath == "" {
		fmt.Fprintln(stderr, "Error: -s/-schema is required")
		fs.Usage()
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "Error: at least one -f/-json-files path is required")
		fs.Usage()
		return 2
	}
	if *output != "text" && *output != "json" {
		fmt.Fprintf(stderr, "Error: unknown output format %q (want text or json)\n", *output)
		return 2
	}

	logger := logging.New(stderr, *verbose)
	ctx := context.Background()

	metricsConfig := otel.DefaultMetricsConfig()
	if *metricsExporter != string(otel.ExporterNone) {
		metricsConfig.Enabled = true
		metricsConfig.ExporterType = otel.ExporterType(*metricsExporter)
		metricsConfig.OTLPEndpoint = *otlpEndpoint
		metricsConfig.OTLPInsecure = *otlpInsecure
	}
	metrics, err := otel.NewMetrics(ctx, metricsConfig)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to set up metrics: %v\n", err)
		return 2
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics shutdown failed")
		}
	}()

	runner := &validation.Runner{
		Out:     stdout,
		Strict:  *strict,
		Metrics: metrics,
		Logger:  logger,
	}

	err = runner.Run(ctx, schemaPath, files)
	if err == nil {
		return 0
	}

	var candidateErr *validation.CandidateError
	if *output == "json" && errors.As(err, &candidateErr) && candidateErr.Report != nil {
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(candidateErr.Report); encErr != nil {
			fmt.Fprintln(stderr, err.Error())
		}
		return 1
	}

	fmt.Fprintln(stderr, err.Error())
	return 1
}
