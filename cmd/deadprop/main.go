package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/deadprop/deadprop/internal/cache"
	"github.com/deadprop/deadprop/internal/output"
	"github.com/deadprop/deadprop/internal/progress"
	"github.com/deadprop/deadprop/internal/scanner"
	"github.com/deadprop/deadprop/pkg/analyzer/unusedprops"
	"github.com/deadprop/deadprop/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig honors the global --config flag, falling back to the default
// search locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func main() {
	app := &cli.App{
		Name:     "deadprop",
		Usage:    "Find private properties that are never read",
		Version:  version,
		Metadata: make(map[string]interface{}),
		Description: `Deadprop scans JavaScript and TypeScript sources for class properties
and methods declared private that no code in their file ever reads.
A private field that is only ever assigned can be deleted along with
every store to it.

Supports: JavaScript, TypeScript, TSX`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"DEADPROP_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.StringFlag{
				Name:  "pprof",
				Usage: "Enable pprof profiling and write to specified prefix (creates <prefix>.cpu.pprof and <prefix>.mem.pprof)",
			},
		},
		Before: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				cpuFile, err := os.Create(pprofPrefix + ".cpu.pprof")
				if err != nil {
					return fmt.Errorf("failed to create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(cpuFile); err != nil {
					cpuFile.Close()
					return fmt.Errorf("failed to start CPU profile: %w", err)
				}
				c.App.Metadata["pprofCPU"] = cpuFile
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				pprof.StopCPUProfile()
				if cpuFile, ok := c.App.Metadata["pprofCPU"].(*os.File); ok {
					cpuFile.Close()
					color.Green("CPU profile written to %s.cpu.pprof", pprofPrefix)
				}

				memFile, err := os.Create(pprofPrefix + ".mem.pprof")
				if err != nil {
					return fmt.Errorf("failed to create memory profile: %w", err)
				}
				defer memFile.Close()

				runtime.GC() // Get up-to-date statistics
				if err := pprof.WriteHeapProfile(memFile); err != nil {
					return fmt.Errorf("failed to write memory profile: %w", err)
				}
				color.Green("Memory profile written to %s.mem.pprof", pprofPrefix)
			}
			return nil
		},
		Commands: []*cli.Command{
			checkCmd(),
			initCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"ck"},
		Usage:     "Check for private properties that are never read",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "registry-scope",
				Usage: "Constructor registry scope: per-file or whole-compilation",
			},
			&cli.BoolFlag{
				Name:  "fail-on-findings",
				Usage: "Exit with a non-zero status when findings are reported",
			},
		},
		Action: runCheckCmd,
	}
}

func runCheckCmd(c *cli.Context) error {
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	checkCfg := cfg.Checks.UnusedPrivateProperty

	scopeStr := checkCfg.RegistryScope
	if s := c.String("registry-scope"); s != "" {
		scopeStr = s
	}
	scope, err := unusedprops.ParseRegistryScope(scopeStr)
	if err != nil {
		return err
	}

	scan := scanner.NewScanner(cfg)

	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	opts := []unusedprops.Option{
		unusedprops.WithRegistryScope(scope),
		unusedprops.WithRenameFunctions(checkCfg.RenameFunctions),
		unusedprops.WithMaxFileSize(checkCfg.MaxFileSize),
	}
	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err == nil {
			opts = append(opts, unusedprops.WithCache(store))
		} else if c.Bool("verbose") {
			color.Yellow("Cache disabled: %v", err)
		}
	}

	upAnalyzer := unusedprops.New(opts...)
	defer upAnalyzer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := progress.NewTracker("Checking private properties...", len(files))
	analysis, err := upAnalyzer.AnalyzeWithProgress(ctx, files, tracker.Tick)
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if skipped := len(files) - analysis.Summary.TotalFilesAnalyzed; skipped > 0 {
		color.Yellow("Skipped %d files that could not be read or parsed", skipped)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// For JSON/TOON, output raw analysis
	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatToon {
		if err := formatter.Output(analysis); err != nil {
			return err
		}
	} else {
		if err := renderFindings(formatter, analysis); err != nil {
			return err
		}
	}

	if c.Bool("fail-on-findings") && len(analysis.Findings) > 0 {
		return fmt.Errorf("%d unused private properties found", len(analysis.Findings))
	}
	return nil
}

func renderFindings(formatter *output.Formatter, analysis *unusedprops.Analysis) error {
	if len(analysis.Findings) > 0 {
		var rows [][]string
		for _, f := range analysis.Findings {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Col),
				f.Name,
				f.Message,
			})
		}

		table := output.NewTable(
			"Unused Private Properties",
			[]string{"Location", "Property", "Message"},
			rows,
			nil,
			nil,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}

	fmt.Fprintf(formatter.Writer(), "\nSummary: %d unused private properties across %d files\n",
		analysis.Summary.TotalFindings,
		analysis.Summary.TotalFilesAnalyzed)
	return nil
}
