package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flightsim/internal/journal"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reloads and failures",
	Long: `Display the most recent reload attempts and entry-point failures
recorded by local and SSH sessions.

Examples:
  flightsim history
  flightsim history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries per section")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := journal.Open(flagJournal)
	if err != nil {
		return err
	}
	defer store.Close()

	reloads, err := store.RecentReloads(flagLimit)
	if err != nil {
		return err
	}
	failures, err := store.RecentFailures(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	const dateFmt = "2006-01-02 15:04:05"

	fmt.Fprintln(out, "Reloads")
	fmt.Fprintln(out)
	if len(reloads) == 0 {
		fmt.Fprintln(out, "  No reloads recorded yet.")
	} else {
		fmt.Fprintf(out, "  %-19s  %-10s  %-20s  %-13s  %s\n", "Date", "Session", "Module", "Outcome", "Message")
		for _, r := range reloads {
			fmt.Fprintf(out, "  %-19s  %-10s  %-20s  %-13s  %s\n",
				r.CreatedAt.Format(dateFmt), r.Session, r.Module, r.Outcome, r.Message)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Failures")
	fmt.Fprintln(out)
	if len(failures) == 0 {
		fmt.Fprintln(out, "  No failures recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-19s  %-10s  %-20s  %-15s  %-5s  %s\n", "Date", "Session", "Module", "Kind", "Line", "Message")
	for _, f := range failures {
		fmt.Fprintf(out, "  %-19s  %-10s  %-20s  %-15s  %-5s  %s\n",
			f.CreatedAt.Format(dateFmt), f.Session, f.Module, f.Kind, f.Line, f.Message)
	}
	return nil
}
