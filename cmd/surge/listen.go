package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/surge-http/surge/pkg/webhook"
)

var (
	listenPort  int
	listenPath  string
	listenCount int
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "port to listen on (0 picks a free port)")
	listenCmd.Flags().StringVar(&listenPath, "path", "/webhook", "path to capture requests on")
	listenCmd.Flags().IntVar(&listenCount, "count", 0, "stop after this many captures (0 = until interrupted)")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Capture incoming webhook requests on a temporary HTTP listener",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var captured atomic.Int64
		var stop sync.Once
		done := make(chan struct{})

		listener, err := webhook.Start(listenPort, listenPath, func(req webhook.Captured) {
			fmt.Fprintf(out, "%s  %s %s  (%d bytes)\n",
				req.Timestamp.Format("15:04:05"),
				methodStyle.Render(req.Method),
				req.Path,
				len(req.Body))
			if req.Body != "" {
				fmt.Fprintln(out, dimStyle.Render(req.Body))
			}
			if n := captured.Add(1); listenCount > 0 && n >= int64(listenCount) {
				stop.Do(func() { close(done) })
			}
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Listening for webhooks on %s (ctrl-c to stop)\n", listener.URL())

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		select {
		case <-interrupt:
		case <-done:
		case <-cmd.Context().Done():
		}

		count, err := listener.Stop()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Captured %d request(s).\n", count)
		return nil
	},
}
