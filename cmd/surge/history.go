package main

import (
	"fmt"
	"strconv"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	historyCmd.AddCommand(historyDiffCmd)
	rootCmd.AddCommand(historyCmd, clearHistoryCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent request history, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		history := store.LoadHistory()
		if len(history) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "History is empty.")
			return nil
		}

		out := cmd.OutOrStdout()
		for i, entry := range history {
			if i >= historyLimit {
				break
			}
			fmt.Fprintf(out, "%3d  %s  %s %s  %s  %dms\n",
				i,
				entry.Timestamp.Format("2006-01-02 15:04:05"),
				methodStyle.Render(entry.Request.Method),
				entry.Request.URL,
				statusStyle(entry.Response.Status).Render(strconv.Itoa(entry.Response.Status)),
				entry.Response.Time)
		}
		return nil
	},
}

var historyDiffCmd = &cobra.Command{
	Use:   "diff <index> <index>",
	Short: "Diff the response bodies of two history entries",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		history := store.LoadHistory()

		entries := make([]int, 2)
		for i, arg := range args {
			idx, err := strconv.Atoi(arg)
			if err != nil || idx < 0 || idx >= len(history) {
				return fmt.Errorf("invalid history index %q (history has %d entries)", arg, len(history))
			}
			entries[i] = idx
		}

		a, b := history[entries[0]], history[entries[1]]
		diff := udiff.Unified(
			fmt.Sprintf("history[%d] %s", entries[0], a.Timestamp.Format("15:04:05")),
			fmt.Sprintf("history[%d] %s", entries[1], b.Timestamp.Format("15:04:05")),
			a.Response.Data+"\n",
			b.Response.Data+"\n",
		)
		if diff == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Responses are identical.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), diff)
		return nil
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		if err := store.ClearHistory(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}
