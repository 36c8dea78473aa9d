package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"

	cfgFile string
	cfg     config
	logger  = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sigscan"})

	rootCmd = &cobra.Command{
		Use:   "sigscan",
		Short: "Compile and search IDA-style byte signatures",
		Long: `sigscan compiles byte signatures such as "48 8b 05 ?? ?? ?? ??" into
padded data/mask buffers and searches live processes or files for them.

Examples:
  sigscan compile "a0 9e 87 00 ?? 5c"
  sigscan aob WeChat --min-length 10
  sigscan scan --name WeChatAppEx.exe --text "we?ha?"
  sigscan file ./dump.bin "48 8b 05 ?? ?? ?? ??"
  sigscan gen --package signatures PlayerBase="a0 9e ?? 5c"`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return teardown()
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file; \"auto\" picks a timestamped name")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(aobCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(fileCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
