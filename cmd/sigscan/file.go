package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zhuweiyou/sigscan"
)

var (
	fileText   bool
	fileLength int
)

var fileCmd = &cobra.Command{
	Use:   "file <path> <pattern>",
	Short: "Search a file's contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, err := compileArg(args[1], fileText, fileLength)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		s := sigscan.NewScanner(pattern, sigscan.WithIgnoreCase(cfg.IgnoreCase))
		offsets := s.FindAll(data)
		if limitReached(len(offsets)) {
			offsets = offsets[:cfg.MaxResults]
		}

		matches := make([]sigscan.Match, 0, len(offsets))
		for _, off := range offsets {
			matches = append(matches, sigscan.Match{
				Address: sigscan.Address(off),
				Data:    data[off : off+pattern.Len()],
			})
		}

		printMatches(cmd.OutOrStdout(), args[0], matches)
		logger.Debug("file scanned", "path", args[0], "size", len(data), "matches", len(matches))
		return nil
	},
}

func init() {
	flags := fileCmd.Flags()
	flags.BoolVar(&fileText, "text", false, "treat the pattern as plain text (? is a wildcard)")
	flags.IntVar(&fileLength, "length", 0, "with --text, pad the pattern with wildcards to this many bytes")
	flags.Bool("ignore-case", false, "fold ASCII case when comparing")
	flags.Int("max-results", 0, "stop after this many matches (0 for no limit)")
}
