package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhuweiyou/sigscan"
)

var compileCmd = &cobra.Command{
	Use:   "compile <pattern>",
	Short: "Show the padded data and mask buffers for a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := sigscan.Compile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("pattern:"), p)
		fmt.Fprintf(out, "%s %d\n", labelStyle.Render("length: "), p.Len())
		fmt.Fprintf(out, "%s %d\n", labelStyle.Render("padded: "), p.PaddedLen())
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("data:   "), hex.EncodeToString(p.Data()))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("mask:   "), hex.EncodeToString(p.Mask()))
		return nil
	},
}
