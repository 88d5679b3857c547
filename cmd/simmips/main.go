package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milesvale/simmips/config"
	"github.com/milesvale/simmips/controller"
	"github.com/milesvale/simmips/lint"
	"github.com/milesvale/simmips/repl"
	"github.com/milesvale/simmips/tui"
	"github.com/milesvale/simmips/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		tuiMode     = flag.Bool("tui", false, "Use the full-screen TUI instead of the line REPL")
		lintOnly    = flag.Bool("lint", false, "Run static checks on the source file and exit")
		lintStrict  = flag.Bool("lint-strict", false, "Treat lint warnings as errors (with -lint)")
		configPath  = flag.String("config", "", "Path to a TOML settings file (default: per-user config)")
		maxSteps    = flag.Uint64("max-steps", 0, "Maximum steps before halt, 0 for unlimited (overrides config)")
		traceFile   = flag.String("trace", "", "Write an execution trace to this file")
		statsFile   = flag.String("stats", "", "Write instruction statistics to this file as JSON on exit")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("simmips %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Println("Error: expected exactly one assembly file argument")
		fmt.Println("Usage: simmips [options] <file.asm>")
		os.Exit(1)
	}
	asmFile := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *lintOnly {
		os.Exit(runLint(asmFile, *lintStrict))
	}

	ctrl := controller.New()

	ctrl.MaxSteps = *maxSteps
	if ctrl.MaxSteps == 0 {
		ctrl.MaxSteps = cfg.Execution.MaxSteps
	}

	if err := ctrl.Load(asmFile); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	tracePath := *traceFile
	if tracePath == "" && cfg.Execution.EnableTrace {
		tracePath = cfg.Trace.OutputFile
	}
	if tracePath != "" {
		traceWriter, err := os.Create(tracePath) // #nosec G304 -- user-specified trace output path
		if err != nil {
			fmt.Printf("Error: cannot create trace file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := traceWriter.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close trace file: %v\n", err)
			}
		}()
		ctrl.Trace = vm.NewExecutionTrace(traceWriter)
	}

	statsPath := *statsFile
	if statsPath == "" && cfg.Execution.EnableStats {
		statsPath = cfg.Statistics.OutputFile
	}
	if statsPath != "" {
		ctrl.Stats = vm.NewPerformanceStatistics()
	}

	if *tuiMode {
		if err := tui.New(ctrl).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: TUI failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		repl.New(ctrl, os.Stdin, os.Stdout).Run()
	}

	if ctrl.Stats != nil {
		if err := writeStats(ctrl.Stats, statsPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write statistics: %v\n", err)
		}
	}
}

// loadConfig loads the settings file at path, or the per-user default
// config (falling back to built-in defaults) when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// runLint reads and lints the source file, printing every finding. The
// returned exit code is non-zero when any finding is at error level.
func runLint(asmFile string, strict bool) int {
	data, err := os.ReadFile(asmFile) // #nosec G304 -- user-specified source path
	if err != nil {
		fmt.Printf("Error: cannot open %s: %v\n", asmFile, err)
		return 1
	}

	opts := lint.DefaultLintOptions()
	opts.Strict = strict
	linter := lint.NewLinter(opts)
	issues := linter.Lint(string(data), asmFile)

	for _, issue := range issues {
		fmt.Printf("%s: %s\n", asmFile, issue)
	}
	if linter.HasErrors() {
		return 1
	}
	fmt.Printf("%s: %d issue(s), no errors\n", asmFile, len(issues))
	return 0
}

func writeStats(stats *vm.PerformanceStatistics, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-specified statistics output path
	if err != nil {
		return err
	}
	defer f.Close()
	return stats.WriteJSON(f)
}

func printHelp() {
	fmt.Println("simmips - MIPS32-subset assembler and interactive interpreter")
	fmt.Println()
	fmt.Println("Usage: simmips [options] <file.asm>")
	fmt.Println()
	fmt.Println("The file is assembled and loaded; on success an interactive session")
	fmt.Println("starts. REPL commands:")
	fmt.Println("  step            execute one instruction, print the new pc")
	fmt.Println("  status          print the failure status (empty while ok)")
	fmt.Println("  print $<reg>    print a register (alias or index 0-31, pc, hi, lo)")
	fmt.Println("  print &<addr>   print one memory byte")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
