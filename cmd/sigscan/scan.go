package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhuweiyou/sigscan"
)

const consolePreviewLen = 80

var (
	scanPIDs   []uint
	scanName   string
	scanText   bool
	scanLength int
)

var scanCmd = &cobra.Command{
	Use:   "scan <pattern>",
	Short: "Search the memory of running processes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, err := compileArg(args[0], scanText, scanLength)
		if err != nil {
			return err
		}

		pids, err := targetPIDs()
		if err != nil {
			return err
		}
		logger.Info("scanning", "pattern", pattern, "processes", len(pids))

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		total := 0
		for _, pid := range pids {
			matches, err := scanProcess(ctx, pid, pattern, remainingResults(total))
			if err != nil {
				logger.Error("scan failed", "pid", pid, "err", err)
				continue
			}

			printMatches(out, fmt.Sprintf("process %d", pid), matches)
			total += len(matches)

			if ctx.Err() != nil || limitReached(total) {
				break
			}
		}

		logger.Info("scan finished", "matches", total)
		return nil
	},
}

func init() {
	flags := scanCmd.Flags()
	flags.UintSliceVar(&scanPIDs, "pid", nil, "process ID to scan (repeatable)")
	flags.StringVar(&scanName, "name", "", "scan every process with this executable name")
	flags.BoolVar(&scanText, "text", false, "treat the argument as plain text (? is a wildcard)")
	flags.IntVar(&scanLength, "length", 0, "with --text, pad the pattern with wildcards to this many bytes")
	flags.Bool("ignore-case", false, "fold ASCII case when comparing")
	flags.String("min-address", "0x0", "lowest address to scan")
	flags.String("max-address", "0x7FFFFFFFFFFF", "scan below this address")
	flags.Int("max-results", 0, "stop after this many matches (0 for no limit)")
	scanCmd.MarkFlagsOneRequired("pid", "name")
}

// compileArg compiles a pattern argument, converting plain text first when
// asked to.
func compileArg(arg string, text bool, length int) (*sigscan.Pattern, error) {
	if text {
		arg = sigscan.StringToPattern(arg, length)
	}
	p, err := sigscan.Compile(arg)
	if err != nil {
		return nil, err
	}
	if p.Len() == 0 {
		return nil, sigscan.ErrEmptyPattern
	}
	return p, nil
}

func targetPIDs() ([]uint32, error) {
	pids := make([]uint32, 0, len(scanPIDs))
	for _, pid := range scanPIDs {
		pids = append(pids, uint32(pid))
	}
	if scanName == "" {
		return pids, nil
	}

	found, err := sigscan.FindProcessesByName(scanName)
	if err != nil {
		return nil, err
	}
	logger.Info("found processes", "name", scanName, "pids", found)
	return append(pids, found...), nil
}

// scanProcess scans the memory of a single process, keeping at most limit
// matches. A limit of zero means no limit.
func scanProcess(ctx context.Context, pid uint32, pattern *sigscan.Pattern, limit int) ([]sigscan.Match, error) {
	scanner, err := sigscan.OpenProcess(pid, sigscan.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	collector := &matchCollector{pid: pid, limit: limit}
	err = scanner.Scan(ctx, sigscan.ScanOptions{
		Pattern:    pattern,
		IgnoreCase: cfg.IgnoreCase,
		MinAddress: sigscan.Address(cfg.MinAddress),
		MaxAddress: sigscan.Address(cfg.MaxAddress),
		Handler:    collector.handle,
	})
	if errors.Is(err, context.Canceled) {
		return collector.matches, nil
	}
	return collector.matches, err
}

// matchCollector gathers the matches of one process and asks the scan to
// stop once limit matches are held.
type matchCollector struct {
	pid     uint32
	limit   int
	matches []sigscan.Match
}

func (c *matchCollector) handle(match sigscan.Match) bool {
	c.matches = append(c.matches, match)
	if len(c.matches)%100 == 0 {
		logger.Info("progress", "pid", c.pid, "matches", len(c.matches))
	}
	return c.limit <= 0 || len(c.matches) < c.limit
}

// remainingResults returns how many more matches max-results allows after
// total, or zero when there is no limit. The scan loop stops before total
// reaches the limit, so a limited result is always positive.
func remainingResults(total int) int {
	if cfg.MaxResults <= 0 {
		return 0
	}
	return cfg.MaxResults - total
}

func limitReached(n int) bool {
	return cfg.MaxResults > 0 && n >= cfg.MaxResults
}

func printMatches(out io.Writer, source string, matches []sigscan.Match) {
	fmt.Fprintf(out, "%s %d matches\n", labelStyle.Render(source+":"), len(matches))
	for _, m := range matches {
		fmt.Fprintf(out, "  %s %s\n", addressStyle.Render(m.Address.String()), mutedStyle.Render(formatForConsole(m.Content(), consolePreviewLen)))
	}
}

// formatForConsole escapes control whitespace and truncates s for display
func formatForConsole(s string, maxLen int) string {
	display := strings.ReplaceAll(s, "\n", "\\n")
	display = strings.ReplaceAll(display, "\r", "\\r")
	display = strings.ReplaceAll(display, "\t", "\\t")

	return truncateString(display, maxLen)
}

// truncateString truncates s to at most maxLen bytes, marking the cut with "..."
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
