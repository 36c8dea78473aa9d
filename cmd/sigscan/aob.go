package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhuweiyou/sigscan"
)

var aobMinLength int

var aobCmd = &cobra.Command{
	Use:   "aob <text>",
	Short: "Convert plain text to an AOB pattern (? becomes a wildcard)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := sigscan.StringToPattern(args[0], aobMinLength)
		if pattern == "" {
			return fmt.Errorf("text must not be empty")
		}
		if _, err := sigscan.Compile(pattern); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pattern)
		return nil
	},
}

func init() {
	aobCmd.Flags().IntVarP(&aobMinLength, "min-length", "n", 0, "pad with wildcards up to this many bytes")
}
