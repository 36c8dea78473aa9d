package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhuweiyou/sigscan/internal/codegen"
)

var (
	genPackage string
	genOut     string
)

var genCmd = &cobra.Command{
	Use:   "gen name=pattern...",
	Short: "Generate Go source with pre-parsed patterns",
	Long: `gen parses each pattern once and writes a Go file declaring a
sigscan.ParsedPattern per name. Pass those values to sigscan.Build at runtime
to skip parsing. Typical use is a go:generate directive:

  //go:generate sigscan gen --package signatures --out patterns_gen.go PlayerBase="a0 9e ?? 5c"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := make([]codegen.Entry, 0, len(args))
		for _, arg := range args {
			name, text, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("argument %q is not name=pattern", arg)
			}
			entries = append(entries, codegen.Entry{Name: name, Text: text})
		}

		var w io.Writer = cmd.OutOrStdout()
		if genOut != "" && genOut != "-" {
			f, err := os.Create(genOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		if err := codegen.Render(w, genPackage, entries); err != nil {
			return err
		}
		logger.Debug("generated patterns", "count", len(entries), "out", genOut)
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genPackage, "package", "p", "signatures", "package name of the generated file")
	genCmd.Flags().StringVarP(&genOut, "out", "o", "-", "output file (- for stdout)")
}
