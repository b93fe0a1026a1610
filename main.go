package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/veilbreakers/gambit-core/gambit"
)

const banner = `
 ██████╗  █████╗ ███╗   ███╗██████╗ ██╗████████╗
██╔════╝ ██╔══██╗████╗ ████║██╔══██╗██║╚══██╔══╝
██║  ███╗███████║██╔████╔██║██████╔╝██║   ██║
██║   ██║██╔══██║██║╚██╔╝██║██╔══██╗██║   ██║
╚██████╔╝██║  ██║██║ ╚═╝ ██║██████╔╝██║   ██║
 ╚═════╝ ╚═╝  ╚═╝╚═╝     ╚═╝╚═════╝ ╚═╝   ╚═╝

VeilBreakers Combat Intelligence`

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel string
	defsDir  string
}

var rootCmd = &cobra.Command{
	Use:   "gambit-core",
	Short: "Gambit-driven combat AI for VeilBreakers agents",
	Long: "gambit-core evaluates personality-weighted gambit rules to decide what\n" +
		"an AI-controlled combatant does each turn. It runs as a decision bridge\n" +
		"for the game client or as a standalone battle simulator.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initLogging(rootFlags.logLevel)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.defsDir, "defs", "", "Directory of archetype YAML files (default: embedded set)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(archetypesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func initLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return nil
}

// loadRegistry builds the archetype registry: the embedded definitions,
// overridden by --defs when given.
func loadRegistry() (*gambit.Registry, error) {
	reg := gambit.NewRegistry()
	if rootFlags.defsDir != "" {
		if err := reg.LoadDir(rootFlags.defsDir); err != nil {
			return nil, err
		}
		return reg, nil
	}
	if err := reg.LoadDefaults(); err != nil {
		return nil, err
	}
	return reg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
