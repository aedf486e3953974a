package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/bindmeta/internal/cli"
	"github.com/toyz/bindmeta/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	config, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	flags := flag.NewFlagSet("bindgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		moduleFlag   = flags.String("module", config.ModuleName, "Custom module path for the manifest (defaults to go.mod module, env BINDGEN_MODULE)")
		verboseFlag  = flags.Bool("verbose", config.Verbose, "Enable verbose output and detailed error reporting (env BINDGEN_VERBOSE)")
		quietFlag    = flags.Bool("quiet", config.Quiet, "Only show errors and final results (env BINDGEN_QUIET)")
		manifestFlag = flags.String("manifest", config.ManifestPath, "Write a YAML manifest of all bindings to this path (env BINDGEN_MANIFEST)")
		cleanFlag    = flags.Bool("clean", false, "Delete all autogen_bindings.go files from the specified directories")
		helpFlag     = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: bindgen [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Parameter binding generator\n")
		fmt.Fprintf(stderr, "Scans Go files for //bind:: annotations on controller methods and generates\n")
		fmt.Fprintf(stderr, "autogen_bindings.go files registering the bindings with bindmeta.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nAnnotations:\n")
		fmt.Fprintf(stderr, "  //bind::<kind> <param> [name] [-ParseJSON] [-Required]\n")
		fmt.Fprintf(stderr, "  kinds: req res param query header cookie body body_param file files\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  bindgen ./...                              # Scan everything recursively\n")
		fmt.Fprintf(stderr, "  bindgen ./internal/controllers             # Scan one directory\n")
		fmt.Fprintf(stderr, "  bindgen -manifest bindings.yaml ./...      # Also write a manifest\n")
		fmt.Fprintf(stderr, "  bindgen -clean ./...                       # Delete all autogen_bindings.go files\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	config.Directories = flags.Args()
	config.ModuleName = *moduleFlag
	config.Verbose = *verboseFlag
	config.Quiet = *quietFlag
	config.ManifestPath = *manifestFlag

	if len(config.Directories) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 1
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case config.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	if *cleanFlag {
		diagnostics.Header("Removing generated bindings")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(config.Directories)
		for _, file := range removed {
			diagnostics.PhaseProgress(fmt.Sprintf("Removing %s", file))
		}
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		diagnostics.Success("Removed %d autogen_bindings.go files", len(removed))
		return 0
	}

	diagnostics.Header("Generating parameter bindings")
	diagnostics.SourcePath(strings.Join(config.Directories, ", "))
	if config.ModuleName != "" {
		diagnostics.Verbose("Custom module: %s", config.ModuleName)
	}

	reporter := cli.NewDiagnosticReporterTo(config.Verbose, stderr)
	generator := cli.NewGenerator(diagnostics, reporter)
	if err := generator.Run(config); err != nil {
		reporter.ReportError(err)
		return 1
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Summary", summary.Stats())
	if config.Verbose && len(summary.GeneratedFiles) > 0 {
		diagnostics.Info("Generated files:")
		diagnostics.Indent()
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
		diagnostics.Unindent()
	}
	diagnostics.GenerationComplete()
	return 0
}
