package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rediwo/redi-debug/logger"
	_ "github.com/rediwo/redi-debug/modules/debug" // Register redi/debug for scripts
	"github.com/rediwo/redi/runtime"
)

const (
	version = "0.1.0"
	usage   = `RediDebug CLI - leveled debug logging

Usage:
  redi-debug <command> [flags] [args]

Commands:
  log <message...>  Write one log record
  view <file>       Print records at or above --min-level
  stats <file>      Summarize records per level and source file
  export <file>     Write records as CSV
  run <script.js>   Execute a JavaScript file with require('redi/debug')
  version           Show version information

Flags:
  --config      YAML file with defaults for level, min_level, file and color
                Flags given on the command line take precedence

  --level       Level of the record written by log (default: info)
                trace|debug|info|warn|error

  --min-level   Threshold for log, view and run (default: trace)

  --file        Append records to this file instead of standard error
                (log and run)

  --caller      Call site written by log, as name:line (default: shell:0)

  --color       Colorize levels in view output

  --out         Write export output to this file instead of standard output

  --help        Show help message

Examples:
  # Record a warning from a shell script
  redi-debug log --level=warn --caller=deploy.sh:42 --file=deploy.log "disk almost full"

  # Show only warnings and errors
  redi-debug view --min-level=warn --color deploy.log

  # Count records per level and file
  redi-debug stats deploy.log

  # Export to CSV
  redi-debug export --out=deploy.csv deploy.log

  # Run a script that logs through redi/debug
  redi-debug run --file=script.log scripts/check.js
`
)

type options struct {
	configPath string
	level      string
	minLevel   string
	file       string
	caller     string
	color      bool
	out        string
}

func main() {
	opts := &options{}

	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.StringVar(&opts.level, "level", "info", "Level of the record written by log")
	flag.StringVar(&opts.minLevel, "min-level", "trace", "Minimum level")
	flag.StringVar(&opts.file, "file", "", "Log file")
	flag.StringVar(&opts.caller, "caller", "shell:0", "Call site as name:line")
	flag.BoolVar(&opts.color, "color", false, "Colorize output")
	flag.StringVar(&opts.out, "out", "", "Export output file")

	// Custom usage
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	// Check if any arguments provided
	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(0)
	}

	// Get command first
	command := os.Args[1]

	// Handle version command before parsing flags
	if command == "version" {
		fmt.Printf("RediDebug CLI v%s\n", version)
		os.Exit(0)
	}

	// Handle help
	if command == "help" || command == "--help" || command == "-h" {
		flag.Usage()
		os.Exit(0)
	}

	// Now parse flags after the command
	flag.CommandLine.Parse(os.Args[2:])

	if opts.configPath != "" {
		cfg, err := loadConfig(opts.configPath)
		if err != nil {
			fatalf("%v", err)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		opts.merge(cfg, set)
	}

	if command == "run" {
		if len(flag.Args()) < 1 {
			fatalf("JavaScript file path required\nUsage: redi-debug run <script.js>")
		}
		runScript(opts, flag.Args()[0])
		return
	}

	if err := run(command, opts, flag.Args(), os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

// fatalf reports a CLI error through the global logger and exits
func fatalf(format string, args ...any) {
	logger.GetGlobalLogger().Log(1, logger.LogLevelError, format, args...)
	os.Exit(1)
}

// run executes every command except run, writing results to stdout
func run(command string, opts *options, args []string, stdout io.Writer) error {
	switch command {
	case "log":
		if len(args) == 0 {
			return errors.New("log requires a message")
		}
		return runLog(opts, strings.Join(args, " "))
	case "view", "stats", "export":
		if len(args) != 1 {
			return errors.Errorf("%s requires exactly one log file", command)
		}
		records, err := loadRecords(args[0])
		if err != nil {
			return err
		}
		switch command {
		case "view":
			threshold, err := parseLevel(opts.minLevel)
			if err != nil {
				return err
			}
			return writeView(stdout, records, threshold, opts.color)
		case "stats":
			writeStats(stdout, records)
			return nil
		default:
			return runExport(opts, records, stdout)
		}
	default:
		return errors.Errorf("unknown command: %s\n\nRun 'redi-debug --help' for usage", command)
	}
}

func runLog(opts *options, message string) error {
	level, err := parseLevel(opts.level)
	if err != nil {
		return err
	}
	threshold, err := parseLevel(opts.minLevel)
	if err != nil {
		return err
	}
	file, line, err := parseCaller(opts.caller)
	if err != nil {
		return err
	}

	l := logger.NewDefaultLogger()
	l.SetLevel(threshold)
	if opts.file != "" {
		if err := l.SetOutputFile(opts.file); err != nil {
			return err
		}
		defer l.Close()
	}

	l.Emit(level, file, line, "%s", message)
	return errors.Wrap(l.Err(), "failed to write record")
}

func runExport(opts *options, records []logger.Record, stdout io.Writer) error {
	if opts.out == "" {
		return exportCSV(stdout, records)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return errors.Wrapf(err, "unable to create export file %s", opts.out)
	}
	defer f.Close()

	if err := exportCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func runScript(opts *options, scriptPath string) {
	// Check if script file exists
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		fatalf("Script file not found: %s", scriptPath)
	}

	// Get absolute path
	absPath, err := filepath.Abs(scriptPath)
	if err != nil {
		fatalf("Failed to get absolute path: %v", err)
	}

	// Scripts log through the global logger
	threshold, err := parseLevel(opts.minLevel)
	if err != nil {
		fatalf("%v", err)
	}
	logger.SetLevel(threshold)
	if opts.file != "" {
		if err := logger.SetOutputFile(opts.file); err != nil {
			fatalf("%v", err)
		}
	}

	// Create executor
	executor := runtime.NewExecutor()

	// Create runtime config
	config := &runtime.Config{
		ScriptPath: absPath,
		BasePath:   filepath.Dir(absPath),
		Version:    version,
	}

	// Execute the script
	exitCode, err := executor.Execute(config)
	if err != nil {
		fatalf("Script execution failed: %v", err)
	}

	// Exit with the same code as the script
	os.Exit(exitCode)
}

func parseLevel(name string) (logger.LogLevel, error) {
	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return level, errors.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// parseCaller splits name:line
func parseCaller(caller string) (string, int, error) {
	i := strings.LastIndexByte(caller, ':')
	if i <= 0 {
		return "", 0, errors.Errorf("invalid caller %q, expected name:line", caller)
	}
	line, err := strconv.Atoi(caller[i+1:])
	if err != nil || line < 0 {
		return "", 0, errors.Errorf("invalid caller %q, expected name:line", caller)
	}
	return caller[:i], line, nil
}
